package driver

import "time"

// Stage describes the phase a file is in.
type Stage string

const (
	// StageLoad is reading and decoding the file.
	StageLoad Stage = "load"
	// StageLex is tokenizing the unit.
	StageLex Stage = "lex"
	// StageSelfTest is checking `//::` directives.
	StageSelfTest Stage = "selftest"
)

// Status captures progress state within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Event reports progress for a file (or for the whole run when File is empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. Implementations must be safe for
// concurrent use.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events to a channel. Sends block, so the consumer
// must keep reading until the run returns.
type ChannelSink chan<- Event

func (s ChannelSink) OnEvent(ev Event) { s <- ev }

func emit(sink ProgressSink, ev Event) {
	if sink != nil {
		sink.OnEvent(ev)
	}
}
