package trace

import (
	"runtime"
	"strconv"
	"sync"
	"time"
)

// Heartbeat emits a driver-scope event every interval while a batch runs.
// A stream of heartbeats with no job span ending in between points at a
// hung job; the goroutine count in each beat shows whether workers leak.
type Heartbeat struct {
	tracer   Tracer
	interval time.Duration
	done     chan struct{}
	stopped  sync.Once
	exited   chan struct{}
}

// StartHeartbeat starts beating; it returns nil when tracing is disabled or
// interval is not positive. Stop is nil-safe.
func StartHeartbeat(tracer Tracer, interval time.Duration) *Heartbeat {
	if tracer == nil || !tracer.Enabled() || interval <= 0 {
		return nil
	}
	h := &Heartbeat{
		tracer:   tracer,
		interval: interval,
		done:     make(chan struct{}),
		exited:   make(chan struct{}),
	}
	go h.loop()
	return h
}

func (h *Heartbeat) loop() {
	defer close(h.exited)

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	started := time.Now()
	for beat := 1; ; beat++ {
		select {
		case now := <-ticker.C:
			h.tracer.Emit(&Event{
				Time:   now,
				Seq:    nextSeq(),
				Kind:   KindHeartbeat,
				Scope:  ScopeDriver,
				GID:    goid(),
				Name:   "heartbeat",
				Detail: "#" + strconv.Itoa(beat),
				Extra: map[string]string{
					"uptime":     now.Sub(started).Round(time.Millisecond).String(),
					"goroutines": strconv.Itoa(runtime.NumGoroutine()),
				},
			})
		case <-h.done:
			return
		}
	}
}

// Stop ends the heartbeat and waits for the last beat to be emitted.
func (h *Heartbeat) Stop() {
	if h == nil {
		return
	}
	h.stopped.Do(func() { close(h.done) })
	<-h.exited
}
