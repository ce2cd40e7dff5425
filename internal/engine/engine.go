// Package engine runs the loanlens pipelines: the analyzer, which reads the
// loan dataset and produces console sections, a chart and a text report, and
// the loader, which copies the cleaned dataset into a database table.
package engine

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/loanlens/internal/state"
	"github.com/leapstack-labs/loanlens/pkg/core"
)

// Config holds engine configuration.
type Config struct {
	// Input is the path of the loan dataset CSV.
	Input string
	// ReportPath is where the text report is written.
	ReportPath string
	// ChartPath is where the six-panel PNG is written.
	ChartPath string
	// ChartDPI is the chart resolution (optional, defaults to 300).
	ChartDPI int
	// WorkbookPath enables the spreadsheet export when set.
	WorkbookPath string
	// SummaryPath enables the YAML summary export when set.
	SummaryPath string
	// StatePath is the SQLite run history database. Empty disables history.
	StatePath string
	// Target is the database the loader writes to.
	Target core.TargetConfig
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// Engine executes the analyzer and loader pipelines.
type Engine struct {
	cfg    Config
	logger *slog.Logger
	store  core.Store
}

// New creates a new engine. The run history store is opened and migrated
// when cfg.StatePath is set.
func New(cfg Config) (*Engine, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	logger.Debug("initializing engine", "input", cfg.Input, "state_path", cfg.StatePath)

	e := &Engine{cfg: cfg, logger: logger}
	if cfg.StatePath == "" {
		return e, nil
	}

	if dir := filepath.Dir(cfg.StatePath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create state directory: %w", err)
		}
	}

	store := state.NewSQLiteStore(logger)
	if err := store.Open(cfg.StatePath); err != nil {
		return nil, fmt.Errorf("failed to open state store: %w", err)
	}
	if err := store.Migrate(); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to migrate state store: %w", err)
	}
	e.store = store
	return e, nil
}

// Close releases all resources.
func (e *Engine) Close() error {
	e.logger.Debug("closing engine")
	if e.store == nil {
		return nil
	}
	return e.store.Close()
}

// Store returns the run history store, or nil when history is disabled.
func (e *Engine) Store() core.Store {
	return e.store
}

// record tracks one pipeline execution in the run history. The returned
// finish function must be called with the outcome.
func (e *Engine) record(kind core.RunKind) func(rows int, err error) {
	if e.store == nil {
		return func(int, error) {}
	}

	run, err := e.store.CreateRun(kind, e.cfg.Input)
	if err != nil {
		e.logger.Warn("failed to record run", "kind", kind, "error", err)
		return func(int, error) {}
	}

	return func(rows int, runErr error) {
		var ferr error
		if runErr != nil {
			ferr = e.store.FailRun(run.ID, runErr.Error())
		} else {
			ferr = e.store.CompleteRun(run.ID, rows)
		}
		if ferr != nil {
			e.logger.Warn("failed to finish run", "run_id", run.ID, "error", ferr)
		}
	}
}
