package driver

// Stage describes a per-file pipeline phase.
type Stage string

const (
	// StageParse covers lexing and parsing.
	StageParse Stage = "parse"
	// StageLower covers the surface-to-IR rewrite.
	StageLower Stage = "lower"
	// StageCache marks a disk cache hit.
	StageCache Stage = "cache"
)

// Status captures progress state within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Event reports progress for one file during a directory run.
type Event struct {
	File   string
	Stage  Stage
	Status Status
}

func emit(ch chan<- Event, file string, stage Stage, status Status) {
	if ch == nil {
		return
	}
	ch <- Event{File: file, Stage: stage, Status: status}
}
