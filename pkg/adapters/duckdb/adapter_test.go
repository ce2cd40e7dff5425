package duckdb

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/loanlens/pkg/adapter"
	"github.com/leapstack-labs/loanlens/pkg/core"
)

func TestAdapter_Connect(t *testing.T) {
	tests := []struct {
		name      string
		setupPath func(t *testing.T) string
		verify    func(t *testing.T, path string)
	}{
		{
			name: "in-memory",
			setupPath: func(_ *testing.T) string {
				return ":memory:"
			},
		},
		{
			name: "file-based",
			setupPath: func(t *testing.T) string {
				tmpDir := t.TempDir()
				return filepath.Join(tmpDir, "test.duckdb")
			},
			verify: func(t *testing.T, path string) {
				_, err := os.Stat(path)
				assert.False(t, os.IsNotExist(err), "database file was not created")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			adp := New(nil)

			dbPath := tt.setupPath(t)
			require.NoError(t, adp.Connect(ctx, core.AdapterConfig{Path: dbPath}))
			defer func() { _ = adp.Close() }()

			if tt.verify != nil {
				tt.verify(t, dbPath)
			}
		})
	}
}

func TestAdapter_NotConnected(t *testing.T) {
	tests := []struct {
		name      string
		operation func(ctx context.Context, adp *Adapter) error
	}{
		{
			name: "exec without connect",
			operation: func(ctx context.Context, adp *Adapter) error {
				return adp.Exec(ctx, "SELECT 1")
			},
		},
		{
			name: "migrate without connect",
			operation: func(ctx context.Context, adp *Adapter) error {
				return adp.Migrate(ctx)
			},
		},
		{
			name: "replace without connect",
			operation: func(ctx context.Context, adp *Adapter) error {
				_, err := adp.ReplaceLoans(ctx, nil)
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			adp := New(nil)

			err := tt.operation(ctx, adp)
			assert.ErrorIs(t, err, adapter.ErrNotConnected)
		})
	}
}

func TestAdapter_Close(t *testing.T) {
	tests := []struct {
		name    string
		connect bool
	}{
		{"close without connect", false},
		{"close after connect", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			adp := New(nil)

			if tt.connect {
				require.NoError(t, adp.Connect(ctx, core.AdapterConfig{Path: ":memory:"}))
			}

			assert.NoError(t, adp.Close())
		})
	}
}

func TestAdapter_ReplaceLoans(t *testing.T) {
	ctx := context.Background()
	adp := New(nil)
	require.NoError(t, adp.Connect(ctx, core.AdapterConfig{Path: ":memory:"}))
	defer func() { _ = adp.Close() }()
	require.NoError(t, adp.Migrate(ctx))
	require.NoError(t, adp.Migrate(ctx))

	apps := []core.LoanApplication{
		{LoanID: core.Text("LP1"), LoanAmount: core.Number(100), LoanAmountTerm: core.Number(360), LoanStatus: core.Text("Y")},
		{LoanID: core.Text("LP2"), LoanAmount: core.Number(250), CreditHistory: core.Number(0), LoanStatus: core.Text("N")},
	}

	n, err := adp.ReplaceLoans(ctx, apps)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	count, err := adp.CountLoans(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// A null Loan_ID violates NOT NULL on the third row.
	_, err = adp.ReplaceLoans(ctx, append(apps, core.LoanApplication{}))
	var insertErr *adapter.InsertError
	require.ErrorAs(t, err, &insertErr)
	assert.Equal(t, 3, insertErr.Row)

	count, err = adp.CountLoans(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestConnect_WithSettings(t *testing.T) {
	ctx := context.Background()
	adp := New(nil)

	err := adp.Connect(ctx, core.AdapterConfig{
		Path:    ":memory:",
		Options: map[string]string{"threads": "2"},
	})
	require.NoError(t, err)
	defer func() { _ = adp.Close() }()

	var threads string
	require.NoError(t, adp.DB.QueryRowContext(ctx, "SELECT current_setting('threads')").Scan(&threads))
	assert.Equal(t, "2", threads)
}

func TestBuildSettingsSQL(t *testing.T) {
	stmts := buildSettingsSQL(map[string]string{
		"threads":      "4",
		"memory_limit": "1GB",
		"timezone":     "O'Hare",
	})

	assert.Equal(t, []string{
		"SET memory_limit = '1GB'",
		"SET threads = '4'",
		"SET timezone = 'O''Hare'",
	}, stmts)
	assert.Empty(t, buildSettingsSQL(nil))
}

func TestAdapter_Registry(t *testing.T) {
	adp, err := adapter.NewAdapter(core.AdapterConfig{Type: "duckdb"}, nil)
	require.NoError(t, err)

	duck, ok := adp.(*Adapter)
	require.True(t, ok)
	assert.Equal(t, "duckdb", duck.DialectName())
}
