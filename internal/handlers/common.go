package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/lehigh-university-libraries/tropy-archive/internal/archive"
	"github.com/lehigh-university-libraries/tropy-archive/internal/models"
	"github.com/lehigh-university-libraries/tropy-archive/internal/storage"
)

// DocumentExporter runs a batch export of a compact JSON-LD document.
type DocumentExporter interface {
	Export(ctx context.Context, doc any) ([]archive.UploadResult, error)
}

type Handler struct {
	runStore *storage.RunStore
	exporter DocumentExporter
	config   archive.Config
	now      func() time.Time

	// exports run one at a time
	exportMu sync.Mutex
}

func New(exporter DocumentExporter, cfg archive.Config) *Handler {
	return &Handler{
		runStore: storage.New(),
		exporter: exporter,
		config:   cfg,
		now:      time.Now,
	}
}

// Routes returns the router for the export API and the healthcheck.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Route("/api/exports", func(r chi.Router) {
		r.Post("/", h.HandleCreateExport)
		r.Get("/", h.HandleListExports)
		r.Get("/{id}", h.HandleGetExport)
	})
	r.Get("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("OK")); err != nil {
			slog.Error("Unable to write healthcheck", "err", err)
		}
	})

	return r
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	render.Status(r, status)
	render.JSON(w, r, data)
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message, "status", code)
	http.Error(w, message, code)
}

// Run helpers
func (h *Handler) getRunOrError(w http.ResponseWriter, runID string) (*models.ExportRun, bool) {
	run, exists := h.runStore.Get(runID)
	if !exists {
		h.writeError(w, "Export not found", http.StatusNotFound)
		return nil, false
	}
	return run, true
}
