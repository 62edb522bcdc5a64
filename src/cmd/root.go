// Package cmd is the command line of museum-insights.
package cmd

import (
	"github.com/ARQAP/museum-insights/src/app"
	"github.com/ARQAP/museum-insights/src/config"
	"github.com/ARQAP/museum-insights/src/harvard"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRootCommand builds the command tree. fetcher replaces the catalog
// client when non-nil.
func NewRootCommand(fetcher harvard.Fetcher) *cobra.Command {
	v := config.New()

	root := &cobra.Command{
		Use:           "museum-insights",
		Short:         "Harvest artifact records from the Harvard Art Museums API and query them",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
	}

	flags := root.PersistentFlags()
	flags.Bool("debug", false, "log every SQL statement")
	flags.String("db-driver", "", "database driver: mysql, postgres or sqlite")
	flags.String("db-dsn", "", "database DSN, overrides the individual connection settings")
	flags.String("api-key", "", "Harvard Art Museums API key")
	bindFlag(v, "debug", root, "debug")
	bindFlag(v, "database.driver", root, "db-driver")
	bindFlag(v, "database.dsn", root, "db-dsn")
	bindFlag(v, "harvard.apikey", root, "api-key")

	build := func() (*app.App, error) {
		settings, err := config.Load(v)
		if err != nil {
			return nil, err
		}
		return app.New(settings, fetcher)
	}

	root.AddCommand(
		newServeCommand(build),
		newFetchCommand(build),
		newReportCommand(build),
		newMigrateCommand(build),
	)
	return root
}

// Execute runs the command line with the real catalog client.
func Execute() error {
	return NewRootCommand(nil).Execute()
}

type appBuilder func() (*app.App, error)

func bindFlag(v *viper.Viper, key string, cmd *cobra.Command, name string) {
	// only fails for an unknown flag name
	_ = v.BindPFlag(key, cmd.PersistentFlags().Lookup(name))
}
