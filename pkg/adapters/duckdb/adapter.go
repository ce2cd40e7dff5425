// Package duckdb provides a DuckDB database adapter for loanlens.
package duckdb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	_ "github.com/marcboeker/go-duckdb" // duckdb driver

	"github.com/leapstack-labs/loanlens/pkg/adapter"
	"github.com/leapstack-labs/loanlens/pkg/core"
)

// createLoanTable is the DuckDB spelling of the loan table migration.
// goose has no DuckDB dialect, so the table is created directly. Loan_ID
// carries no primary key: DuckDB rejects re-inserting a key deleted
// earlier in the same transaction.
const createLoanTable = `CREATE TABLE IF NOT EXISTS loan_applications (
    Loan_ID VARCHAR NOT NULL,
    Gender VARCHAR,
    Married VARCHAR,
    Dependents VARCHAR,
    Education VARCHAR,
    Self_Employed VARCHAR,
    ApplicantIncome DOUBLE,
    CoapplicantIncome DOUBLE,
    LoanAmount DOUBLE,
    Loan_Amount_Term INTEGER,
    Credit_History INTEGER,
    Property_Area VARCHAR,
    Loan_Status VARCHAR
)`

// Adapter implements the adapter.Adapter interface for DuckDB.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new DuckDB adapter instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{
		BaseSQLAdapter: adapter.BaseSQLAdapter{Logger: logger},
	}
}

// DialectName returns the SQL dialect for this adapter.
func (a *Adapter) DialectName() string {
	return "duckdb"
}

// Connect establishes a connection to DuckDB.
// Use ":memory:" as the path for an in-memory database. Options are
// applied as session settings (SET key = 'value').
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	path := cfg.Path
	if path == "" {
		path = ":memory:"
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return fmt.Errorf("failed to open duckdb connection: %w", err)
	}
	db.SetMaxOpenConns(1)

	// Test the connection
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping duckdb: %w", err)
	}

	for _, stmt := range buildSettingsSQL(cfg.Options) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return fmt.Errorf("failed to apply duckdb setting: %w", err)
		}
	}

	a.DB = db
	a.Cfg = cfg
	return nil
}

// Migrate creates the loan table.
func (a *Adapter) Migrate(ctx context.Context) error {
	if err := a.Exec(ctx, createLoanTable); err != nil {
		return fmt.Errorf("failed to create %s: %w", core.LoanTable, err)
	}
	return nil
}

// buildSettingsSQL returns one SET statement per option, sorted by key.
func buildSettingsSQL(options map[string]string) []string {
	keys := make([]string, 0, len(options))
	for k := range options {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	stmts := make([]string, 0, len(keys))
	for _, k := range keys {
		value := strings.ReplaceAll(options[k], "'", "''")
		stmts = append(stmts, fmt.Sprintf("SET %s = '%s'", k, value))
	}
	return stmts
}

// Ensure Adapter implements adapter.Adapter interface
var _ adapter.Adapter = (*Adapter)(nil)
