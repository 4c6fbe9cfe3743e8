package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/lehigh-university-libraries/tropy-archive/internal/report"
	"github.com/spf13/cobra"
)

func newReportCmd() *cobra.Command {
	var resultsPath string
	var format string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize a saved run report",
		Example: `  tropy-archive report --results runs/items.parquet
  tropy-archive report --results runs/items.yaml --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			run, err := report.Load(resultsPath)
			if err != nil {
				return fmt.Errorf("failed to load results: %w", err)
			}

			switch format {
			case "text":
				report.PrintSummary(cmd.OutOrStdout(), run)
				return nil
			case "json":
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(run)
			default:
				return fmt.Errorf("unsupported format: %s", format)
			}
		},
	}

	cmd.Flags().StringVar(&resultsPath, "results", "", "Run report to read (.yaml, .jsonl or .parquet)")
	cmd.Flags().StringVar(&format, "format", "text", "Output format (text or json)")
	_ = cmd.MarkFlagRequired("results")

	return cmd
}
