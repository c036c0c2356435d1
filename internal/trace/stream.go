package trace

import (
	"errors"
	"io"
	"sync"
)

// StreamTracer writes every accepted event as soon as it arrives. Write
// errors are swallowed: a broken trace file must not fail the analysis.
type StreamTracer struct {
	mu     sync.Mutex
	w      io.Writer
	level  Level
	format Format
	wrote  int
	closed bool
}

func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	open, _, _ := framing(format)
	_, _ = io.WriteString(w, open) //nolint:errcheck
	return &StreamTracer{w: w, level: level, format: format}
}

func (t *StreamTracer) Emit(ev *Event) {
	if !accepts(t.level, ev) {
		return
	}
	ev.Seq = nextSeq()
	data := FormatEvent(ev, t.format)

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	if t.wrote > 0 {
		_, sep, _ := framing(t.format)
		_, _ = io.WriteString(t.w, sep) //nolint:errcheck
	}
	t.wrote++
	_, _ = t.w.Write(data) //nolint:errcheck
}

// Flush forwards to writers that buffer, such as *bufio.Writer.
func (t *StreamTracer) Flush() error {
	if f, ok := t.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// Close terminates a Chrome document, flushes and closes the writer when it
// is an io.Closer. Later calls are no-ops.
func (t *StreamTracer) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true
	_, _, closing := framing(t.format)
	_, _ = io.WriteString(t.w, closing) //nolint:errcheck
	t.mu.Unlock()

	err := t.Flush()
	if c, ok := t.w.(io.Closer); ok {
		err = errors.Join(err, c.Close())
	}
	return err
}

func (t *StreamTracer) Level() Level { return t.level }
func (t *StreamTracer) Enabled() bool { return t.level > LevelOff }
