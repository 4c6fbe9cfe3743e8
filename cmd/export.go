package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/lehigh-university-libraries/tropy-archive/internal/archive"
	"github.com/lehigh-university-libraries/tropy-archive/internal/exporter"
	"github.com/lehigh-university-libraries/tropy-archive/internal/jsonld"
	"github.com/lehigh-university-libraries/tropy-archive/internal/models"
	"github.com/lehigh-university-libraries/tropy-archive/internal/report"
	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	var configPath string
	var resultsPath string

	cmd := &cobra.Command{
		Use:   "export <file.jsonld>",
		Short: "Upload the items of a Tropy JSON-LD export",
		Long: `Expands a Tropy JSON-LD export and uploads every item it contains.

Items are exported one at a time and their photos one after another. With
ignore errors enabled, failed photos and items are logged and skipped;
otherwise the first failed photo aborts its item and the batch stops there.`,
		Example: `  # Export with credentials from the environment or .env
  tropy-archive export items.jsonld

  # Export into a collection and keep a Parquet report of the run
  tropy-archive export items.jsonld --collection my_collection --results runs/items.parquet

  # Stop at the first failure
  tropy-archive export items.jsonld --ignore-errors=false`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, configPath)
			if err != nil {
				return err
			}

			source := args[0]
			file, err := os.Open(source)
			if err != nil {
				return fmt.Errorf("failed to open export file: %w", err)
			}
			doc, err := jsonld.ReadDocument(file)
			file.Close()
			if err != nil {
				return err
			}

			client := archive.NewClient(cfg, archive.WithLogger(slog.Default()))
			batch := exporter.New(client, jsonld.NewExpander(), cfg.IgnoreErrors, slog.Default())

			run := &models.ExportRun{
				ID:         uuid.NewString(),
				Collection: cfg.Collection,
				Endpoint:   cfg.Endpoint,
				Source:     filepath.Base(source),
				CreatedAt:  time.Now(),
			}

			results, exportErr := batch.Export(cmd.Context(), doc)
			run.Results = results

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Exported %d item(s) to collection %s\n", len(results), cfg.Collection)
			report.PrintResults(out, results)

			if resultsPath != "" && results != nil {
				if err := report.Save(resultsPath, run); err != nil {
					return err
				}
				absPath, _ := filepath.Abs(resultsPath)
				fmt.Fprintf(out, "\n✅ Run report saved to: %s\n", absPath)
			}

			return exportErr
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	cmd.Flags().StringVar(&resultsPath, "results", "", "Write a run report (.yaml, .jsonl or .parquet)")
	cmd.Flags().String("collection", archive.DefaultCollection, "Collection new items are added to")
	cmd.Flags().Bool("ignore-errors", true, "Skip failed photos and items instead of stopping")

	return cmd
}
