package core

import "context"

// Adapter defines the interface that all database adapters must implement.
type Adapter interface {
	// Connect establishes a connection to the database.
	Connect(ctx context.Context, cfg AdapterConfig) error

	// Close closes the database connection.
	Close() error

	// Exec executes a SQL statement that doesn't return rows.
	Exec(ctx context.Context, sql string) error

	// Migrate creates or upgrades the loan table.
	Migrate(ctx context.Context) error

	// ReplaceLoans replaces every row of the loan table with apps inside a
	// single transaction and returns the number of inserted rows.
	ReplaceLoans(ctx context.Context, apps []LoanApplication) (int, error)

	// CountLoans returns the number of rows currently in the loan table.
	CountLoans(ctx context.Context) (int64, error)

	// DialectName returns the SQL dialect name used for placeholders and migrations.
	DialectName() string
}

// AdapterConfig holds configuration for connecting to a database.
type AdapterConfig struct {
	Type     string
	Path     string
	Host     string
	Port     int
	Database string
	Username string
	Password string
	Options  map[string]string
}
