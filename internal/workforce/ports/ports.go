// Package ports defines shared interfaces for the workforce module.
// Interfaces are placed here when consumed by multiple services to avoid duplication.
package ports

import (
	"context"
	"log/slog"
	"time"

	"cna/internal/workforce/models"
	"cna/pkg/platform/audit"
	"cna/pkg/requestcontext"
)

// DatasetStore persists imported CNA datasets wholesale. The core never
// mutates rows in place; replacing a dataset means importing a new one.
type DatasetStore interface {
	// Create stores a dataset under its ID.
	Create(ctx context.Context, dataset *models.Dataset) error

	// Get retrieves a dataset by ID.
	Get(ctx context.Context, id string) (*models.Dataset, error)

	// List returns dataset IDs with labels and import times, newest first.
	List(ctx context.Context) ([]models.Dataset, error)

	// Delete removes a dataset.
	Delete(ctx context.Context, id string) error
}

// SnapshotCache holds computed aggregate snapshots keyed by dataset ID.
// A cache is an optimization only: misses and errors fall back to recompute.
type SnapshotCache interface {
	Get(ctx context.Context, datasetID string) (*models.AggregatedData, error)
	Set(ctx context.Context, datasetID string, snapshot *models.AggregatedData) error
	Invalidate(ctx context.Context, datasetID string) error
}

// AuditPublisher emits audit events for significant operations.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// NarrativeRequest is the serialized snapshot subset handed to the external
// narrative generator.
type NarrativeRequest struct {
	DatasetLabel string
	Aggregated   *models.AggregatedData
	Grid         *models.SegmentationGrid
}

// Narrative is the schema-validated response from the generator.
type Narrative struct {
	Headline        string    `json:"headline"`
	Overview        string    `json:"overview"`
	KeyFindings     []string  `json:"key_findings"`
	Risks           []string  `json:"risks"`
	Recommendations []string  `json:"recommendations"`
	GeneratedAt     time.Time `json:"generated_at"`
}

// NarrativeGenerator is the untrusted, optional external collaborator that
// turns computed statistics into prose. Implementations must honor ctx
// cancellation; failures surface as errors wrapping sentinel.ErrUnavailable
// and never affect the numeric snapshots.
type NarrativeGenerator interface {
	Generate(ctx context.Context, req NarrativeRequest) (*Narrative, error)
}

// LogAudit is a shared helper for emitting audit events across workforce
// services. It logs to the structured logger and, if configured, the audit
// publisher. Publisher failures are logged and swallowed: operations auditing
// is fail-open.
func LogAudit(ctx context.Context, logger *slog.Logger, publisher AuditPublisher, event audit.AuditEvent, datasetID string, details map[string]string) {
	if logger != nil {
		logger.InfoContext(ctx, "audit event",
			"event", string(event),
			"dataset_id", datasetID,
			"log_type", "audit",
		)
	}
	if publisher == nil {
		return
	}
	err := publisher.Emit(ctx, audit.Event{
		Category:  audit.CategoryOf(event),
		Timestamp: time.Now(),
		Action:    string(event),
		DatasetID: datasetID,
		RequestID: requestcontext.RequestID(ctx),
		Details:   details,
	})
	if err != nil && logger != nil {
		logger.WarnContext(ctx, "audit emit failed", "event", string(event), "error", err)
	}
}
