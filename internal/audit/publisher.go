// Package audit provides the audit event publishers. Operations events are
// fail-open: a broken pipeline is logged and never blocks the business
// operation that emitted the event.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"cna/internal/platform/kafka"
	"cna/pkg/platform/audit"
)

// Publisher is the sink side of audit emission.
type Publisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// LogPublisher writes audit events to the structured log. It is the fallback
// sink when kafka is not configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Emit(ctx context.Context, event audit.Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	p.logger.InfoContext(ctx, "audit",
		"category", string(event.Category),
		"action", event.Action,
		"dataset_id", event.DatasetID,
		"request_id", event.RequestID,
	)
	return nil
}

// KafkaPublisher publishes audit events as JSON to the audit topic, keyed by
// dataset ID so per-dataset ordering is preserved.
type KafkaPublisher struct {
	producer *kafka.Producer
}

func NewKafkaPublisher(producer *kafka.Producer) *KafkaPublisher {
	return &KafkaPublisher{producer: producer}
}

func (p *KafkaPublisher) Emit(ctx context.Context, event audit.Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}
	return p.producer.Produce(ctx, []byte(event.DatasetID), value)
}
