package commands

import (
	"github.com/spf13/cobra"
)

// NewLoadCommand creates the load command.
func NewLoadCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load",
		Short: "Load the cleaned dataset into the loan_applications table",
		Long: `Connect to the configured target, clean the loan dataset, and replace
the contents of the loan_applications table with it in a single transaction.

If any row fails to insert, the transaction is rolled back and the table
keeps its previous contents. The connection is always closed.`,
		Example: `  # Load into the MySQL target from loanlens.yaml
  loanlens load

  # Load into a local SQLite file
  LOANLENS_TARGET__DATABASE=loans.db loanlens load --target-type sqlite`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			_, err = cc.Engine.Load(cmd.Context(), cmd.OutOrStdout())
			return err
		},
	}

	cmd.Flags().String("target-type", "", "Target database type (mysql|postgres|sqlite|duckdb)")
	cmd.Flags().Bool("migrate", true, "Create the loan table when it does not exist")

	_ = cmd.RegisterFlagCompletionFunc("target-type", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"mysql", "postgres", "sqlite", "duckdb"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}
