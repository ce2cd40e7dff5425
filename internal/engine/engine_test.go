package engine

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/leapstack-labs/loanlens/internal/dataset"
	"github.com/leapstack-labs/loanlens/internal/testutil"
	"github.com/leapstack-labs/loanlens/pkg/adapter"
	_ "github.com/leapstack-labs/loanlens/pkg/adapters/sqlite"
	"github.com/leapstack-labs/loanlens/pkg/core"
)

func newTestEngine(t *testing.T, input string) (*Engine, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := Config{
		Input:      input,
		ReportPath: filepath.Join(dir, "analysis_report.txt"),
		ChartPath:  filepath.Join(dir, "loan_analysis_visualizations.png"),
		ChartDPI:   30,
		StatePath:  filepath.Join(dir, ".loanlens", "state.db"),
		Target: core.TargetConfig{
			Type:     "sqlite",
			Database: filepath.Join(dir, "loans.db"),
			Migrate:  true,
		},
		Logger: testutil.NewTestLogger(t),
	}
	eng, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = eng.Close() })
	return eng, dir
}

func countRows(t *testing.T, path string) int {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM "+core.LoanTable).Scan(&n))
	return n
}

func TestNew_WithoutState(t *testing.T) {
	eng, err := New(Config{})
	require.NoError(t, err)
	assert.Nil(t, eng.Store())
	assert.NoError(t, eng.Close())
}

func TestEngine_Analyze(t *testing.T) {
	input := testutil.WriteLoanCSV(t, testutil.SampleLoans...)
	eng, _ := newTestEngine(t, input)

	var out bytes.Buffer
	res, err := eng.Analyze(context.Background(), &out)
	require.NoError(t, err)

	assert.Equal(t, 8, res.Figures.Total)
	assert.Equal(t, 5, res.Figures.Approved)
	assert.Equal(t, 3, res.Figures.Rejected)
	assert.InDelta(t, 62.5, res.Figures.ApprovalRate, 1e-9)

	text := out.String()
	for _, want := range []string{
		"LOAN DATA ANALYSIS PROJECT",
		"Shape: (8, 13)",
		"DATA CLEANING",
		"Data cleaning completed!",
		"DEMOGRAPHIC ANALYSIS",
		"PROPERTY AREA ANALYSIS",
		"SUMMARY REPORT",
		"- Total Applications: 8",
		"ANALYSIS COMPLETED SUCCESSFULLY!",
	} {
		assert.Contains(t, text, want)
	}

	report, err := os.ReadFile(eng.cfg.ReportPath)
	require.NoError(t, err)
	assert.Contains(t, string(report), "- Approval Rate: 62.50%")

	info, err := os.Stat(eng.cfg.ChartPath)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	runs, err := eng.Store().ListRuns(0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, core.RunKindAnalyze, runs[0].Kind)
	assert.Equal(t, core.RunStatusCompleted, runs[0].Status)
	assert.Equal(t, 8, runs[0].Rows)
}

func TestEngine_AnalyzeExports(t *testing.T) {
	input := testutil.WriteLoanCSV(t, testutil.SampleLoans...)
	eng, dir := newTestEngine(t, input)
	eng.cfg.WorkbookPath = filepath.Join(dir, "analysis.xlsx")
	eng.cfg.SummaryPath = filepath.Join(dir, "summary.yaml")

	_, err := eng.Analyze(context.Background(), &bytes.Buffer{})
	require.NoError(t, err)

	assert.FileExists(t, eng.cfg.WorkbookPath)
	assert.FileExists(t, eng.cfg.SummaryPath)
}

func TestEngine_AnalyzeReadErrors(t *testing.T) {
	tests := []struct {
		name  string
		input func(t *testing.T) string
		check func(t *testing.T, err error)
	}{
		{
			name:  "missing file",
			input: func(t *testing.T) string { return filepath.Join(t.TempDir(), "absent.csv") },
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, os.ErrNotExist)
			},
		},
		{
			name: "malformed numeric",
			input: func(t *testing.T) string {
				return testutil.WriteLoanCSV(t, "LP1,Male,Yes,0,Graduate,No,lots,0,100,360,1,Urban,Y")
			},
			check: func(t *testing.T, err error) {
				var verr *dataset.ValueError
				assert.True(t, errors.As(err, &verr))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng, _ := newTestEngine(t, tt.input(t))

			var out bytes.Buffer
			res, err := eng.Analyze(context.Background(), &out)
			require.Error(t, err)
			assert.Nil(t, res)
			tt.check(t, err)

			assert.NotContains(t, out.String(), "BASIC STATISTICS")
			assert.NoFileExists(t, eng.cfg.ReportPath)

			runs, err := eng.Store().ListRuns(0)
			require.NoError(t, err)
			require.Len(t, runs, 1)
			assert.Equal(t, core.RunStatusFailed, runs[0].Status)
			assert.NotEmpty(t, runs[0].Error)
		})
	}
}

func TestEngine_Load(t *testing.T) {
	input := testutil.WriteLoanCSV(t, testutil.SampleLoans...)
	eng, _ := newTestEngine(t, input)

	var out bytes.Buffer
	n, err := eng.Load(context.Background(), &out)
	require.NoError(t, err)
	assert.Equal(t, 8, n)
	assert.Equal(t, 8, countRows(t, eng.cfg.Target.Database))
	assert.Contains(t, out.String(), "Successfully loaded 8 records into database")
	assert.Contains(t, out.String(), "sqlite connection closed")

	// A second load replaces the table instead of appending.
	n, err = eng.Load(context.Background(), &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, 8, n)
	assert.Equal(t, 8, countRows(t, eng.cfg.Target.Database))

	runs, err := eng.Store().ListRuns(0)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	for _, r := range runs {
		assert.Equal(t, core.RunKindLoad, r.Kind)
		assert.Equal(t, core.RunStatusCompleted, r.Status)
	}
}

func TestEngine_LoadImputesMissingLoanAmount(t *testing.T) {
	input := testutil.WriteLoanCSV(t,
		"LP1,Male,Yes,0,Graduate,No,1000,0,100,360,1,Urban,Y",
		"LP2,Male,Yes,0,Graduate,No,1000,0,200,360,1,Urban,N",
		"LP3,Male,Yes,0,Graduate,No,1000,0,300,360,1,Urban,Y",
		"LP4,Male,Yes,0,Graduate,No,1000,0,abc,360,1,Urban,Y",
	)
	eng, _ := newTestEngine(t, input)

	_, err := eng.Load(context.Background(), &bytes.Buffer{})
	require.NoError(t, err)

	db, err := sql.Open("sqlite", eng.cfg.Target.Database)
	require.NoError(t, err)
	defer db.Close()

	var amount float64
	require.NoError(t, db.QueryRow("SELECT LoanAmount FROM "+core.LoanTable+" WHERE Loan_ID = 'LP4'").Scan(&amount))
	assert.InDelta(t, 200.0, amount, 1e-9)
}

func TestEngine_LoadConnectFailure(t *testing.T) {
	eng, _ := newTestEngine(t, filepath.Join(t.TempDir(), "never-read.csv"))
	eng.cfg.Target = core.TargetConfig{Type: "sqlite", Database: filepath.Join(t.TempDir(), "missing", "dir", "loans.db")}

	var out bytes.Buffer
	_, err := eng.Load(context.Background(), &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to sqlite")
	assert.NotContains(t, out.String(), "Successfully loaded")

	runs, err := eng.Store().ListRuns(0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, core.RunStatusFailed, runs[0].Status)
}

func TestEngine_LoadUnknownTarget(t *testing.T) {
	eng, _ := newTestEngine(t, "loans.csv")
	eng.cfg.Target = core.TargetConfig{Type: "oracle"}

	_, err := eng.Load(context.Background(), &bytes.Buffer{})
	var unknown *adapter.UnknownAdapterError
	assert.True(t, errors.As(err, &unknown))
}

func TestEngine_LoadRollsBackOnInsertFailure(t *testing.T) {
	eng, _ := newTestEngine(t, testutil.WriteLoanCSV(t, testutil.SampleLoans...))

	_, err := eng.Load(context.Background(), &bytes.Buffer{})
	require.NoError(t, err)

	// Duplicate Loan_ID violates the primary key on the third row.
	eng.cfg.Input = testutil.WriteLoanCSV(t,
		"LP9,Male,Yes,0,Graduate,No,1000,0,100,360,1,Urban,Y",
		"LP10,Male,Yes,0,Graduate,No,1000,0,100,360,1,Urban,Y",
		"LP9,Male,Yes,0,Graduate,No,1000,0,100,360,1,Urban,Y",
	)
	var out bytes.Buffer
	_, err = eng.Load(context.Background(), &out)
	require.Error(t, err)

	var insertErr *adapter.InsertError
	require.True(t, errors.As(err, &insertErr))
	assert.Equal(t, 3, insertErr.Row)
	assert.Equal(t, "LP9", insertErr.LoanID)

	assert.Equal(t, 8, countRows(t, eng.cfg.Target.Database))
	assert.Contains(t, out.String(), "sqlite connection closed")
}
