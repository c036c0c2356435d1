package trace

import "time"

// Kind is the type of a trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint     // instant event, e.g. one element pair
	KindHeartbeat // periodic liveness signal
)

var kindNames = [...]string{
	KindSpanBegin: "begin",
	KindSpanEnd:   "end",
	KindPoint:     "point",
	KindHeartbeat: "heartbeat",
}

func (k Kind) String() string {
	if k != 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Scope is the granularity of an event; smaller is coarser.
type Scope uint8

const (
	ScopeDriver  Scope = iota + 1 // CLI command
	ScopeRun                      // one old/new analysis
	ScopePhase                    // match+check, transform
	ScopeJob                      // one module of a batch
	ScopeElement                  // single pairs, debug only
)

var scopeNames = [...]string{
	ScopeDriver:  "driver",
	ScopeRun:     "run",
	ScopePhase:   "phase",
	ScopeJob:     "job",
	ScopeElement: "element",
}

func (s Scope) String() string {
	if s != 0 && int(s) < len(scopeNames) {
		return scopeNames[s]
	}
	return "unknown"
}

// Event is one trace record. Seq is reassigned by every sink so each output
// stays strictly ordered.
type Event struct {
	Time     time.Time
	Seq      uint64
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 for roots
	GID      uint64 // goroutine, so parallel jobs render on separate lanes
	Name     string // e.g. "analysis", "transform", "job:core"
	Detail   string
	Extra    map[string]string
}
