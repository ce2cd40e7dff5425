package commands

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/loanlens/internal/report"
	"github.com/leapstack-labs/loanlens/pkg/core"
)

// errHistoryDisabled is returned when state_path is empty.
var errHistoryDisabled = errors.New("run history is disabled (state_path is empty)")

// NewHistoryCommand creates the history command.
func NewHistoryCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent analyze and load runs",
		Long: `Show the most recent pipeline runs recorded in the state database,
newest first, with their status, row count and error.`,
		Example: `  # Show the last 20 runs
  loanlens history

  # Show every run
  loanlens history --limit 0`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			store := cc.Engine.Store()
			if store == nil {
				return errHistoryDisabled
			}

			runs, err := store.ListRuns(limit)
			if err != nil {
				return fmt.Errorf("failed to list runs: %w", err)
			}
			if len(runs) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded yet.")
				return nil
			}

			renderRuns(cmd, runs)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show (0 for all)")

	return cmd
}

func renderRuns(cmd *cobra.Command, runs []*core.Run) {
	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(report.TableStyle(cmd.OutOrStdout()))
	t.AppendHeader(table.Row{"ID", "Kind", "Status", "Rows", "Input", "Started", "Duration", "Error"})

	for _, r := range runs {
		duration := "-"
		if r.CompletedAt != nil {
			duration = r.CompletedAt.Sub(r.StartedAt).Round(time.Millisecond).String()
		}
		t.AppendRow(table.Row{
			shortID(r.ID),
			r.Kind,
			statusCell(cmd.OutOrStdout(), r.Status),
			r.Rows,
			r.Input,
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			duration,
			r.Error,
		})
	}

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight},
		{Number: 8, WidthMax: 60},
	})
	t.Render()
}

// statusCell colors the run status on a terminal.
func statusCell(w io.Writer, status core.RunStatus) string {
	if !report.IsTerminal(w) {
		return string(status)
	}
	color := lipgloss.Color("11")
	switch status {
	case core.RunStatusCompleted:
		color = lipgloss.Color("10")
	case core.RunStatusFailed:
		color = lipgloss.Color("9")
	}
	return lipgloss.NewStyle().Foreground(color).Render(string(status))
}

// shortID returns the first block of a run UUID.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
