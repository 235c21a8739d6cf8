package audit

import (
	"context"
	"log/slog"

	"cna/pkg/platform/audit"
)

// ChannelPublisher decouples emitters from the sink through a buffered inbox.
// Emit never blocks: when the buffer is full the event is dropped and logged,
// keeping operations auditing fail-open under backpressure.
type ChannelPublisher struct {
	inbox  chan audit.Event
	logger *slog.Logger
}

func NewChannelPublisher(buffer int, logger *slog.Logger) *ChannelPublisher {
	return &ChannelPublisher{
		inbox:  make(chan audit.Event, buffer),
		logger: logger,
	}
}

func (p *ChannelPublisher) Emit(ctx context.Context, event audit.Event) error {
	select {
	case p.inbox <- event:
	default:
		if p.logger != nil {
			p.logger.Warn("audit inbox full, dropping event", "action", event.Action)
		}
	}
	return nil
}

// Inbox exposes the receive side for the worker.
func (p *ChannelPublisher) Inbox() <-chan audit.Event { return p.inbox }

// Worker drains an inbox into a sink publisher. Sink failures are logged and
// the worker keeps running; it exits when the context is cancelled.
type Worker struct {
	sink   Publisher
	inbox  <-chan audit.Event
	logger *slog.Logger
}

func NewWorker(sink Publisher, inbox <-chan audit.Event, logger *slog.Logger) *Worker {
	return &Worker{sink: sink, inbox: inbox, logger: logger}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.sink.Emit(ctx, event); err != nil && w.logger != nil {
				w.logger.Warn("audit sink emit failed", "action", event.Action, "error", err)
			}
		}
	}
}
