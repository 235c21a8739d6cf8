// Package handler wires the workforce analytics endpoints to the service.
// Handlers stay thin: decode, delegate, translate errors.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"cna/internal/export"
	"cna/internal/workforce/models"
	"cna/internal/workforce/ports"
	"cna/internal/workforce/service"
	dErrors "cna/pkg/domain-errors"
	"cna/pkg/platform/httputil"
	"cna/pkg/requestcontext"
)

// Service defines the operations the handler exposes.
type Service interface {
	Import(ctx context.Context, req service.ImportRequest) (*service.ImportResult, error)
	Summary(ctx context.Context, datasetID string) (*models.AggregatedData, error)
	Segmentation(ctx context.Context, datasetID string) (*models.SegmentationGrid, error)
	Report(ctx context.Context, datasetID string) (*export.Document, error)
	ListDatasets(ctx context.Context) ([]models.Dataset, error)
	DeleteDataset(ctx context.Context, datasetID string) error
	GenerateNarrative(ctx context.Context, datasetID string) (*ports.Narrative, error)
}

// Handler wires workforce endpoints to the service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a workforce handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts read endpoints on r and mutating endpoints on admin.
// The two routers differ only in middleware; callers guard admin with the
// admin token.
func (h *Handler) Register(r chi.Router, admin chi.Router) {
	admin.Post("/datasets", h.HandleImport)
	admin.Delete("/datasets/{datasetID}", h.HandleDelete)
	admin.Post("/datasets/{datasetID}/narrative", h.HandleNarrative)

	r.Get("/datasets", h.HandleList)
	r.Get("/datasets/{datasetID}/summary", h.HandleSummary)
	r.Get("/datasets/{datasetID}/segmentation", h.HandleSegmentation)
	r.Get("/datasets/{datasetID}/report", h.HandleReport)
}

// HandleImport handles POST /datasets.
func (h *Handler) HandleImport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	req, ok := httputil.Decode[ImportRequest](w, r, h.logger)
	if !ok {
		return
	}

	result, err := h.service.Import(ctx, req.ToService())
	if err != nil {
		h.logger.ErrorContext(ctx, "dataset import failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "dataset imported",
		"request_id", requestcontext.RequestID(ctx),
		"dataset_id", result.DatasetID,
		"positions", result.PositionCount,
		"officers", result.OfficerCount,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusCreated, FromImportResult(result))
}

// HandleSummary handles GET /datasets/{datasetID}/summary.
func (h *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	datasetID := chi.URLParam(r, "datasetID")
	snapshot, err := h.service.Summary(r.Context(), datasetID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, snapshot)
}

// HandleSegmentation handles GET /datasets/{datasetID}/segmentation.
func (h *Handler) HandleSegmentation(w http.ResponseWriter, r *http.Request) {
	datasetID := chi.URLParam(r, "datasetID")
	grid, err := h.service.Segmentation(r.Context(), datasetID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, grid)
}

// HandleReport handles GET /datasets/{datasetID}/report.
func (h *Handler) HandleReport(w http.ResponseWriter, r *http.Request) {
	datasetID := chi.URLParam(r, "datasetID")
	doc, err := h.service.Report(r.Context(), datasetID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, doc)
}

// HandleList handles GET /datasets.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	datasets, err := h.service.ListDatasets(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromDatasets(datasets))
}

// HandleDelete handles DELETE /datasets/{datasetID}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	datasetID := chi.URLParam(r, "datasetID")
	if err := h.service.DeleteDataset(r.Context(), datasetID); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleNarrative handles POST /datasets/{datasetID}/narrative. Generator
// failures surface as a distinct unavailable state rather than the standard
// error envelope, so clients can tell "no narrative" from "no data".
func (h *Handler) HandleNarrative(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	datasetID := chi.URLParam(r, "datasetID")
	start := time.Now()

	narrative, err := h.service.GenerateNarrative(ctx, datasetID)
	if err != nil {
		if dErrors.CodeOf(err) == dErrors.CodeUnavailable {
			httputil.WriteJSON(w, http.StatusServiceUnavailable, NarrativeResponse{
				Status: NarrativeStatusUnavailable,
				Reason: dErrors.MessageOf(err),
			})
			return
		}
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "narrative generated",
		"request_id", requestcontext.RequestID(ctx),
		"dataset_id", datasetID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, NarrativeResponse{
		Status:    NarrativeStatusReady,
		Narrative: narrative,
	})
}
