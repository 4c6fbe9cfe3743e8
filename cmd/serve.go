package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/lehigh-university-libraries/tropy-archive/internal/archive"
	"github.com/lehigh-university-libraries/tropy-archive/internal/exporter"
	"github.com/lehigh-university-libraries/tropy-archive/internal/handlers"
	"github.com/lehigh-university-libraries/tropy-archive/internal/jsonld"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var port string
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the export API server",
		Long: `Starts an HTTP API that accepts Tropy JSON-LD exports and uploads them.

POST a document to /api/exports to run an export. Runs are kept in memory
and listed at /api/exports. Exports are processed one at a time.`,
		Example: `  # Start server on default port 8888
  tropy-archive serve

  # Start server on custom port
  tropy-archive serve --port 3000

  # Submit an export
  curl -X POST --data-binary @items.jsonld "http://localhost:8888/api/exports?source=items.jsonld"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, configPath)
			if err != nil {
				return err
			}

			client := archive.NewClient(cfg, archive.WithLogger(slog.Default()))
			batch := exporter.New(client, jsonld.NewExpander(), cfg.IgnoreErrors, slog.Default())
			handler := handlers.New(batch, cfg)

			addr := ":" + port
			server := &http.Server{
				Addr:    addr,
				Handler: handler.Routes(),
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Export API available", "addr", addr, "url", "http://localhost"+addr, "collection", cfg.Collection)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				// Give in-flight exports time to finish their current upload
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "8888", "Port to listen on")
	cmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML config file")

	return cmd
}
