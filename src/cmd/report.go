package cmd

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/ARQAP/museum-insights/src/db"
	"github.com/ARQAP/museum-insights/src/reports"
	"github.com/spf13/cobra"
)

func newReportCommand(build appBuilder) *cobra.Command {
	var (
		args reports.Args
		xlsx string
	)

	cmd := &cobra.Command{
		Use:   "report [id]",
		Short: "Run a predefined report, or list the catalog when no id is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, positional []string) error {
			out := cmd.OutOrStdout()
			if len(positional) == 0 {
				return printCatalog(cmd)
			}

			id, err := strconv.Atoi(positional[0])
			if err != nil {
				return fmt.Errorf("invalid report ID %q", positional[0])
			}
			report, err := reports.Lookup(id)
			if err != nil {
				return err
			}

			a, err := build()
			if err != nil {
				return err
			}
			if err := db.Migrate(cmd.Context(), a.Opener); err != nil {
				return err
			}

			res, err := a.Reports.RunReport(cmd.Context(), id, args)
			if err != nil {
				return err
			}

			cyan.Fprintf(out, "%d. %s\n", report.ID, report.Title)
			if xlsx == "" {
				return printResult(out, res)
			}
			return exportResult(cmd, res, xlsx)
		},
	}

	cmd.Flags().StringVar(&args.ArtifactID, "artifact-id", "", "artifact ID for reports that take one")
	cmd.Flags().StringVar(&args.Department, "department", "", "department for reports that take one")
	cmd.Flags().StringVar(&xlsx, "xlsx", "", "write the result to this XLSX file instead of printing it")
	return cmd
}

func printCatalog(cmd *cobra.Command) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSLUG\tPARAM\tTITLE")
	for _, r := range reports.Catalog() {
		param := string(r.Param)
		if param == "" {
			param = "-"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", r.ID, r.Slug, param, r.Title)
	}
	return tw.Flush()
}

func exportResult(cmd *cobra.Command, res *reports.Result, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := reports.WriteXLSX(f, res); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	success(cmd.OutOrStdout(), "Wrote %d rows to %s", len(res.Rows), path)
	return nil
}
