package cmd

import (
	"log"

	"github.com/spf13/cobra"
)

func newServeCommand(build appBuilder) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Migrate the schema and start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := build()
			if err != nil {
				return err
			}
			if host, _ := cmd.Flags().GetString("host"); host != "" {
				a.Settings.Server.Host = host
			}
			if err := a.Prepare(cmd.Context()); err != nil {
				return err
			}

			log.Printf("Server is running on %s\n", a.Settings.Server.Host)
			return a.Router().Run(a.Settings.Server.Host)
		},
	}
	cmd.Flags().String("host", "", "listen address, defaults to server.host")
	return cmd
}
