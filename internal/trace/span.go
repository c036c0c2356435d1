package trace

import (
	"bytes"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"
)

// счётчики общие для всех трассировщиков процесса
var seqCounter, spanCounter atomic.Uint64

func nextSeq() uint64 { return seqCounter.Add(1) }

// goid достаёт номер горутины из заголовка стека "goroutine 17 [running]:".
func goid() uint64 {
	var buf [64]byte
	header, ok := bytes.CutPrefix(buf[:runtime.Stack(buf[:], false)], []byte("goroutine "))
	if !ok {
		return 0
	}
	num, _, _ := bytes.Cut(header, []byte(" "))
	id, err := strconv.ParseUint(string(num), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

func emits(t Tracer, scope Scope) bool {
	return t != nil && t.Enabled() && t.Level().ShouldEmit(scope)
}

// Span is an open Begin/End pair. Spans of a disabled tracer or a filtered
// scope are inert; every method is still safe to call on them.
type Span struct {
	tracer Tracer
	begin  Event
	extra  map[string]string
}

// Begin emits the opening event; parent is 0 for a root span.
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if !emits(t, scope) {
		return &Span{tracer: Nop}
	}
	s := &Span{tracer: t, begin: Event{
		Time:     time.Now(),
		Kind:     KindSpanBegin,
		Scope:    scope,
		SpanID:   spanCounter.Add(1),
		ParentID: parent,
		GID:      goid(),
		Name:     name,
	}}
	ev := s.begin
	ev.Seq = nextSeq()
	t.Emit(&ev)
	return s
}

func (s *Span) live() bool {
	return s != nil && s.tracer != nil && s.tracer.Enabled()
}

// End emits the closing event with the collected extras and returns the
// span duration.
func (s *Span) End(detail string) time.Duration {
	if !s.live() {
		return 0
	}
	ev := s.begin
	ev.Time = time.Now()
	ev.Seq = nextSeq()
	ev.Kind = KindSpanEnd
	ev.Detail = detail
	ev.Extra = s.extra
	s.tracer.Emit(&ev)
	return ev.Time.Sub(s.begin.Time)
}

// WithExtra attaches key=value to the closing event.
func (s *Span) WithExtra(key, value string) *Span {
	if !s.live() {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string, 2)
	}
	s.extra[key] = value
	return s
}

// ID is 0 for inert spans, so children of a filtered span become roots.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.begin.SpanID
}

// Point emits a single instant event under parent.
func Point(t Tracer, scope Scope, name string, parent uint64, detail string) {
	if !emits(t, scope) {
		return
	}
	t.Emit(&Event{
		Time:     time.Now(),
		Seq:      nextSeq(),
		Kind:     KindPoint,
		Scope:    scope,
		ParentID: parent,
		GID:      goid(),
		Name:     name,
		Detail:   detail,
	})
}
