package driver

import "time"

// Stage describes a phase of one batch job.
type Stage string

const (
	// StageLoad reads and hashes both snapshots.
	StageLoad Stage = "load"
	// StageAnalyze runs the analysis.
	StageAnalyze Stage = "analyze"
	// StageCache looks up or stores the result cache.
	StageCache Stage = "cache"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the job is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the job is currently working.
	StatusWorking Status = "working"
	// StatusCached indicates the result came from the cache.
	StatusCached Status = "cached"
	// StatusDone indicates the job is done.
	StatusDone Status = "done"
	// StatusError indicates the job failed.
	StatusError Status = "error"
)

// Event reports progress for a job.
type Event struct {
	Job     string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. Implementations must be safe for
// concurrent use: jobs report from their own goroutines.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// FuncSink adapts a function.
type FuncSink func(Event)

func (f FuncSink) OnEvent(evt Event) {
	if f != nil {
		f(evt)
	}
}
