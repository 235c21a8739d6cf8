// Package audit defines the transport-agnostic audit event model. Publishers
// (log, kafka) fan events out; emission is fail-open for operations events so
// a broken audit pipeline never blocks dataset processing.
package audit

import "time"

// EventCategory classifies audit events by their primary purpose.
// This enables different retention policies and routing per category.
type EventCategory string

const (
	// CategoryCompliance covers events with regulatory significance and long
	// retention, e.g. deletion of a survey dataset containing personnel data.
	CategoryCompliance EventCategory = "compliance"

	// CategorySecurity covers events relevant to security monitoring,
	// e.g. rejected admin tokens on mutating endpoints.
	CategorySecurity EventCategory = "security"

	// CategoryOperations covers events useful for operational visibility,
	// e.g. dataset imports and snapshot recomputations. Can be sampled.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so sinks can fan out.
type Event struct {
	Category  EventCategory     `json:"category"`
	Timestamp time.Time         `json:"timestamp"`
	Action    string            `json:"action"`
	Actor     string            `json:"actor,omitempty"`
	DatasetID string            `json:"dataset_id,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
	Details   map[string]string `json:"details,omitempty"`
}

type AuditEvent string

const (
	EventDatasetImported    AuditEvent = "dataset_imported"
	EventDatasetDeleted     AuditEvent = "dataset_deleted"
	EventSnapshotComputed   AuditEvent = "snapshot_computed"
	EventNarrativeGenerated AuditEvent = "narrative_generated"
	EventNarrativeFailed    AuditEvent = "narrative_failed"
	EventAdminTokenRejected AuditEvent = "admin_token_rejected"
)

// eventCategories maps each audit event to its category.
var eventCategories = map[AuditEvent]EventCategory{
	EventDatasetImported:    CategoryOperations,
	EventDatasetDeleted:     CategoryCompliance,
	EventSnapshotComputed:   CategoryOperations,
	EventNarrativeGenerated: CategoryOperations,
	EventNarrativeFailed:    CategoryOperations,
	EventAdminTokenRejected: CategorySecurity,
}

// CategoryOf returns the category for a known event, defaulting to operations.
func CategoryOf(event AuditEvent) EventCategory {
	if c, ok := eventCategories[event]; ok {
		return c
	}
	return CategoryOperations
}
