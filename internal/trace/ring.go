package trace

import (
	"io"
	"sync"
)

// DefaultRingSize is used when a ring is asked for with no capacity.
const DefaultRingSize = 4096

// RingTracer keeps the newest events in memory; the CLI dumps them when a
// run fails.
type RingTracer struct {
	mu    sync.Mutex
	slots []Event
	total int // принято событий за всё время, слот = total % len(slots)
	level Level
}

func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = DefaultRingSize
	}
	return &RingTracer{slots: make([]Event, capacity), level: level}
}

func (t *RingTracer) Emit(ev *Event) {
	if !accepts(t.level, ev) {
		return
	}
	stored := *ev
	stored.Seq = nextSeq()

	t.mu.Lock()
	t.slots[t.total%len(t.slots)] = stored
	t.total++
	t.mu.Unlock()
}

// Snapshot copies the kept events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()

	kept := min(t.total, len(t.slots))
	out := make([]Event, 0, kept)
	for i := t.total - kept; i < t.total; i++ {
		out = append(out, t.slots[i%len(t.slots)])
	}
	return out
}

// Dump writes the snapshot; FormatChrome produces a complete document.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	events := t.Snapshot()
	open, sep, closing := framing(format)
	if _, err := io.WriteString(w, open); err != nil {
		return err
	}
	for i := range events {
		if i > 0 {
			if _, err := io.WriteString(w, sep); err != nil {
				return err
			}
		}
		if _, err := w.Write(FormatEvent(&events[i], format)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, closing)
	return err
}

// framing возвращает обёртку документа и разделитель событий.
func framing(format Format) (open, sep, closing string) {
	if format == FormatChrome {
		return "{\"traceEvents\":[\n", ",\n", "\n]}\n"
	}
	return "", "", ""
}

func (t *RingTracer) Flush() error { return nil }
func (t *RingTracer) Close() error { return nil }
func (t *RingTracer) Level() Level { return t.level }
func (t *RingTracer) Enabled() bool { return t.level > LevelOff }
