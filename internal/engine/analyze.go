package engine

import (
	"context"
	"fmt"
	"io"

	"github.com/leapstack-labs/loanlens/internal/analysis"
	"github.com/leapstack-labs/loanlens/internal/chart"
	"github.com/leapstack-labs/loanlens/internal/cleaning"
	"github.com/leapstack-labs/loanlens/internal/dataset"
	"github.com/leapstack-labs/loanlens/internal/report"
	"github.com/leapstack-labs/loanlens/pkg/core"
)

// Analyze runs the analyzer pipeline and prints its sections to w.
// Reading errors are returned before any aggregation takes place.
func (e *Engine) Analyze(ctx context.Context, w io.Writer) (res *analysis.Result, err error) {
	finish := e.record(core.RunKindAnalyze)
	defer func() {
		rows := 0
		if res != nil {
			rows = res.Figures.Total
		}
		finish(rows, err)
	}()

	e.logger.Info("starting analysis", "input", e.cfg.Input)
	console := report.NewConsole(w)
	console.Banner("LOAN DATA ANALYSIS PROJECT")

	apps, err := dataset.ReadFile(e.cfg.Input, dataset.AnalyzeOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}
	console.Printf("Dataset loaded successfully!")
	console.Printf("Shape: (%d, %d)", len(apps), len(core.Columns))

	console.Section("DATA CLEANING")
	missing := analysis.MissingValues(apps)
	console.Missing(missing)

	cleaned, err := cleaning.Apply(apps)
	if err != nil {
		return nil, fmt.Errorf("failed to clean dataset: %w", err)
	}
	e.logger.Debug("dataset cleaned", "rows", len(cleaned), "imputed", cleaning.MissingImputed(apps))
	console.Printf("\nData cleaning completed!")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res, err = analysis.Analyze(cleaned)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze dataset: %w", err)
	}
	console.Analysis(res)

	console.Section("CREATING VISUALIZATIONS")
	if err := chart.WriteFile(e.cfg.ChartPath, res, chart.Options{DPI: e.cfg.ChartDPI}); err != nil {
		return nil, fmt.Errorf("failed to write chart: %w", err)
	}
	console.Printf("\nVisualizations saved as '%s'", e.cfg.ChartPath)

	console.Section("SUMMARY REPORT")
	if err := console.Report(res.Figures); err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}
	console.Printf("")
	if err := report.WriteFile(e.cfg.ReportPath, res.Figures); err != nil {
		return nil, fmt.Errorf("failed to write report: %w", err)
	}
	console.Printf("\nReport saved as '%s'", e.cfg.ReportPath)

	if err := e.export(res, missing, console); err != nil {
		return nil, err
	}

	console.Section("ANALYSIS COMPLETED SUCCESSFULLY!")
	e.logger.Info("analysis completed", "rows", res.Figures.Total)
	return res, nil
}

// export writes the optional workbook and summary files.
func (e *Engine) export(res *analysis.Result, missing []analysis.MissingValue, console *report.Console) error {
	if e.cfg.WorkbookPath != "" {
		if err := report.WriteWorkbook(e.cfg.WorkbookPath, missing, res); err != nil {
			return fmt.Errorf("failed to write workbook: %w", err)
		}
		console.Printf("Workbook saved as '%s'", e.cfg.WorkbookPath)
	}
	if e.cfg.SummaryPath != "" {
		if err := report.WriteSummary(e.cfg.SummaryPath, res.Figures); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
		console.Printf("Summary saved as '%s'", e.cfg.SummaryPath)
	}
	return nil
}
