package adapter

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// MigrationTable tracks the loan table migrations. It is separate from
// goose's default table so a target database can also host run history.
const MigrationTable = "loanlens_schema_version"

// MigrateWith applies the embedded loan table migrations using dialect.
func (b *BaseSQLAdapter) MigrateWith(ctx context.Context, dialect goose.Dialect) error {
	if b.DB == nil {
		return ErrNotConnected
	}

	fsys, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("failed to open migrations: %w", err)
	}

	provider, err := goose.NewProvider(dialect, b.DB, fsys,
		goose.WithTableName(MigrationTable),
		goose.WithSlog(b.logger()),
	)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	for _, r := range results {
		b.logger().Debug("applied migration",
			slog.String("source", r.Source.Path),
			slog.Duration("duration", r.Duration))
	}
	return nil
}
