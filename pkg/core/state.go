package core

import "time"

// Store defines the interface for run history operations.
type Store interface {
	Open(path string) error
	Close() error
	Migrate() error

	CreateRun(kind RunKind, input string) (*Run, error)
	GetRun(id string) (*Run, error)
	CompleteRun(id string, rows int) error
	FailRun(id string, errMsg string) error
	ListRuns(limit int) ([]*Run, error)
}

// RunKind identifies which pipeline produced a run.
type RunKind string

// Run kinds.
const (
	RunKindAnalyze RunKind = "analyze"
	RunKindLoad    RunKind = "load"
)

// RunStatus represents the status of a pipeline run.
type RunStatus string

// Run status constants.
const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// Run represents one execution of a pipeline.
type Run struct {
	ID          string
	Kind        RunKind
	Input       string
	Status      RunStatus
	Rows        int
	StartedAt   time.Time
	CompletedAt *time.Time
	Error       string
}
