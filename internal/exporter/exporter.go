package exporter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lehigh-university-libraries/tropy-archive/internal/archive"
	"github.com/lehigh-university-libraries/tropy-archive/internal/jsonld"
)

// ErrExpansion marks errors raised while expanding the input document.
var ErrExpansion = errors.New("JSON-LD expansion failed")

// ItemExporter uploads a single item.
type ItemExporter interface {
	Export(ctx context.Context, item jsonld.Item) (*archive.UploadResult, error)
}

// Expander turns a compact document into item graphs.
type Expander interface {
	Expand(doc any) ([]jsonld.Graph, error)
}

// Exporter runs item exports over every graph of a document, one item at a time.
type Exporter struct {
	items        ItemExporter
	expander     Expander
	ignoreErrors bool
	logger       *slog.Logger
}

// New creates an Exporter. A nil logger uses slog.Default.
func New(items ItemExporter, expander Expander, ignoreErrors bool, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{
		items:        items,
		expander:     expander,
		ignoreErrors: ignoreErrors,
		logger:       logger,
	}
}

// Export expands doc and exports every item it contains. Only expansion
// failures and cancellation are returned as errors.
func (e *Exporter) Export(ctx context.Context, doc any) ([]archive.UploadResult, error) {
	e.logger.Debug("Expanding JSON-LD document")
	graphs, err := e.expander.Expand(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExpansion, err)
	}
	return e.ExportGraphs(ctx, graphs)
}

// ExportGraphs exports the items of already expanded graphs in order.
//
// A failed item is logged. With ignoreErrors it is left out of the results
// and the batch continues; otherwise the batch stops and the results so far
// are returned without an error.
func (e *Exporter) ExportGraphs(ctx context.Context, graphs []jsonld.Graph) ([]archive.UploadResult, error) {
	results := []archive.UploadResult{}

	total := 0
	for _, graph := range graphs {
		total += len(graph)
	}
	e.logger.Info("Exporting items", "graphs", len(graphs), "items", total)

	n := 0
	for _, graph := range graphs {
		for _, item := range graph {
			if err := ctx.Err(); err != nil {
				e.logger.Info("Export cancelled", "completed", len(results), "remaining", total-n)
				return results, err
			}
			n++

			title := item.Title()
			e.logger.Debug("Exporting item", "position", n, "total", total, "title", title)

			result, err := e.items.Export(ctx, item)
			if err != nil {
				e.logger.Error("Failed to export item", "position", n, "title", title, "err", err)
				if e.ignoreErrors {
					continue
				}
				return results, nil
			}

			results = append(results, *result)
		}
	}

	e.logger.Info("Export finished", "items", total, "results", len(results))
	return results, nil
}
