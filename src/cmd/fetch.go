package cmd

import (
	"fmt"
	"strings"

	"github.com/ARQAP/museum-insights/src/db"
	"github.com/ARQAP/museum-insights/src/dtos"
	"github.com/ARQAP/museum-insights/src/harvard"
	"github.com/spf13/cobra"
)

func newFetchCommand(build appBuilder) *cobra.Command {
	var (
		classification string
		pages          int
	)

	labels := make([]string, 0, len(harvard.Classifications()))
	for _, c := range harvard.Classifications() {
		labels = append(labels, string(c))
	}

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch one classification from the catalog and insert the new records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if pages < 1 {
				return fmt.Errorf("--pages must be at least 1, got %d", pages)
			}

			a, err := build()
			if err != nil {
				return err
			}
			if err := db.Migrate(cmd.Context(), a.Opener); err != nil {
				return err
			}

			res, err := a.Ingest.Ingest(cmd.Context(), classification, pages)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if res.Fetched == 0 {
				warning(out, "The catalog returned no %s records", res.Classification)
				return nil
			}
			success(out, "Fetched %d %s records", res.Fetched, res.Classification)
			fmt.Fprintf(out, "  metadata: %d new\n  media:    %d new\n  colors:   %d new\n",
				res.Metadata, res.Media, res.Colors)
			return nil
		},
	}

	cmd.Flags().StringVarP(&classification, "classification", "c", "",
		"classification to fetch: "+strings.Join(labels, ", "))
	cmd.Flags().IntVarP(&pages, "pages", "p", dtos.DefaultIngestPages, "number of pages to request")
	_ = cmd.MarkFlagRequired("classification")
	return cmd
}
