package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/loanlens/internal/cli/config"
	"github.com/leapstack-labs/loanlens/internal/testutil"
)

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	config.ResetConfig()

	cmd := NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootCmd_Subcommands(t *testing.T) {
	cmd := NewRootCmd()

	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"analyze", "load", "history", "version"} {
		assert.Contains(t, names, want)
	}
	assert.True(t, cmd.SilenceUsage)
	assert.True(t, cmd.SilenceErrors)
}

func TestRootCmd_Version(t *testing.T) {
	t.Chdir(t.TempDir())

	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "loanlens v"+Version)
}

func TestRootCmd_AnalyzeLoadHistory(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	input := testutil.WriteLoanCSV(t, testutil.SampleLoans...)
	state := filepath.Join(dir, "state.db")

	t.Setenv("LOANLENS_TARGET__TYPE", "sqlite")
	t.Setenv("LOANLENS_TARGET__DATABASE", filepath.Join(dir, "loans.db"))

	out, _, err := execute(t, "analyze",
		"--input", input,
		"--state", state,
		"--report", filepath.Join(dir, "report.txt"),
		"--chart", filepath.Join(dir, "chart.png"),
		"--dpi", "30",
		"--summary", filepath.Join(dir, "summary.yaml"),
	)
	require.NoError(t, err)
	assert.Contains(t, out, "LOAN DATA ANALYSIS REPORT")
	assert.FileExists(t, filepath.Join(dir, "report.txt"))
	assert.FileExists(t, filepath.Join(dir, "chart.png"))
	assert.FileExists(t, filepath.Join(dir, "summary.yaml"))

	out, _, err = execute(t, "load", "--input", input, "--state", state)
	require.NoError(t, err)
	assert.Contains(t, out, "Successfully loaded 8 records into database")

	out, _, err = execute(t, "history", "--state", state)
	require.NoError(t, err)
	assert.Contains(t, out, "analyze")
	assert.Contains(t, out, "load")
}

func TestRootCmd_Errors(t *testing.T) {
	tests := []struct {
		name      string
		env       map[string]string
		args      []string
		errSubstr string
	}{
		{
			name:      "missing input file",
			args:      []string{"analyze", "--input", "absent.csv", "--state", ""},
			errSubstr: "failed to read dataset",
		},
		{
			name:      "unknown target",
			env:       map[string]string{"LOANLENS_TARGET__TYPE": "oracle"},
			args:      []string{"load", "--state", ""},
			errSubstr: "unknown adapter type",
		},
		{
			name:      "history disabled",
			args:      []string{"history", "--state", ""},
			errSubstr: "run history is disabled",
		},
		{
			name:      "missing config file",
			args:      []string{"analyze", "--config", "absent.yaml"},
			errSubstr: "error reading config file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, _, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestRootCmd_VerboseLogging(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	input := testutil.WriteLoanCSV(t, testutil.SampleLoans...)

	_, stderr, err := execute(t, "analyze", "-v", "--input", input, "--state", "", "--dpi", "30")
	require.NoError(t, err)
	assert.Contains(t, stderr, "level=DEBUG")
	assert.Contains(t, stderr, "analysis completed")
}
