package cmd

import (
	"github.com/ARQAP/museum-insights/src/db"
	"github.com/spf13/cobra"
)

func newMigrateCommand(build appBuilder) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the artifact tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := build()
			if err != nil {
				return err
			}
			if err := db.Migrate(cmd.Context(), a.Opener); err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Schema is up to date")
			return nil
		},
	}
}
