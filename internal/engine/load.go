package engine

import (
	"context"
	"fmt"
	"io"

	"github.com/leapstack-labs/loanlens/internal/cleaning"
	"github.com/leapstack-labs/loanlens/internal/dataset"
	"github.com/leapstack-labs/loanlens/pkg/adapter"
	"github.com/leapstack-labs/loanlens/pkg/core"
)

// Load runs the loader pipeline: it replaces the contents of the loan table
// in the configured target with the cleaned dataset and returns the number of
// rows written. Nothing is read when the connection cannot be established.
func (e *Engine) Load(ctx context.Context, w io.Writer) (n int, err error) {
	finish := e.record(core.RunKindLoad)
	defer func() { finish(n, err) }()

	cfg := e.cfg.Target.ToAdapterConfig()
	e.logger.Info("starting load", "input", e.cfg.Input, "target", cfg.Type)

	db, err := adapter.NewAdapter(cfg, e.logger)
	if err != nil {
		return 0, fmt.Errorf("failed to create database adapter: %w", err)
	}
	if err := db.Connect(ctx, cfg); err != nil {
		return 0, fmt.Errorf("failed to connect to %s: %w", cfg.Type, err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			e.logger.Warn("failed to close connection", "error", cerr)
		}
		_, _ = fmt.Fprintf(w, "%s connection closed\n", cfg.Type)
	}()
	_, _ = fmt.Fprintf(w, "Successfully connected to %s database\n", cfg.Type)

	if e.cfg.Target.Migrate {
		if err := db.Migrate(ctx); err != nil {
			return 0, fmt.Errorf("failed to migrate %s: %w", core.LoanTable, err)
		}
	}

	apps, err := dataset.ReadFile(e.cfg.Input, dataset.LoadOptions)
	if err != nil {
		return 0, fmt.Errorf("failed to read dataset: %w", err)
	}

	cleaned, err := cleaning.Apply(apps)
	if err != nil {
		return 0, fmt.Errorf("failed to clean dataset: %w", err)
	}

	n, err = db.ReplaceLoans(ctx, cleaned)
	if err != nil {
		return 0, fmt.Errorf("failed to load data: %w", err)
	}

	_, _ = fmt.Fprintf(w, "Successfully loaded %d records into database\n", n)
	e.logger.Info("load completed", "rows", n, "target", cfg.Type)
	return n, nil
}
