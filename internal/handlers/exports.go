package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/lehigh-university-libraries/tropy-archive/internal/exporter"
	"github.com/lehigh-university-libraries/tropy-archive/internal/jsonld"
	"github.com/lehigh-university-libraries/tropy-archive/internal/models"
)

// HandleCreateExport exports the JSON-LD document in the request body and
// stores the run. The optional source query parameter names the document.
func (h *Handler) HandleCreateExport(w http.ResponseWriter, r *http.Request) {
	doc, err := jsonld.ReadDocument(r.Body)
	if err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	run := &models.ExportRun{
		ID:         uuid.NewString(),
		Collection: h.config.Collection,
		Endpoint:   h.config.Endpoint,
		Source:     r.URL.Query().Get("source"),
		CreatedAt:  h.now(),
	}

	h.exportMu.Lock()
	slog.Info("Starting export", "run_id", run.ID, "source", run.Source)
	results, err := h.exporter.Export(r.Context(), doc)
	h.exportMu.Unlock()

	if err != nil {
		if errors.Is(err, exporter.ErrExpansion) {
			h.writeError(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		h.writeError(w, "Export failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	run.Results = results
	h.runStore.Set(run.ID, run)

	summary := run.Summarize()
	slog.Info("Export stored", "run_id", run.ID, "items", summary.Items, "files", summary.Files, "items_failed", summary.ItemsFailed)

	h.writeJSON(w, r, http.StatusCreated, run)
}

// HandleListExports lists stored runs, newest first.
func (h *Handler) HandleListExports(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, h.runStore.List())
}

func (h *Handler) HandleGetExport(w http.ResponseWriter, r *http.Request) {
	run, ok := h.getRunOrError(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	h.writeJSON(w, r, http.StatusOK, run)
}
