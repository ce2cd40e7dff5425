package commands

import (
	"github.com/spf13/cobra"
)

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze the loan dataset and write the report and chart",
		Long: `Read the loan dataset, impute missing values, and print the
demographic, income, loan amount, credit history and property area
breakdowns of the approval rate.

The summary report and the six-panel chart are written to report_path and
chart_path. A spreadsheet of every table and a YAML summary are written when
--workbook and --summary are given.`,
		Example: `  # Analyze ./loan_data_set.csv
  loanlens analyze

  # Analyze another file and export a workbook
  loanlens analyze --input data/loans.csv --workbook analysis.xlsx`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			_, err = cc.Engine.Analyze(cmd.Context(), cmd.OutOrStdout())
			return err
		},
	}

	cmd.Flags().String("report", "", "Path of the text report (default: analysis_report.txt)")
	cmd.Flags().String("chart", "", "Path of the PNG chart (default: loan_analysis_visualizations.png)")
	cmd.Flags().Int("dpi", 0, "Chart resolution in dots per inch (default: 300)")
	cmd.Flags().String("workbook", "", "Also write every table to this .xlsx file")
	cmd.Flags().String("summary", "", "Also write the report figures to this YAML file")

	return cmd
}
