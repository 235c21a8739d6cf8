package service

import (
	"context"

	"cna/internal/workforce/ports"
	dErrors "cna/pkg/domain-errors"
	"cna/pkg/platform/audit"
	"cna/pkg/platform/sentinel"
)

// GenerateNarrative runs the external narrative generator over the dataset's
// computed snapshots. The generator is strictly layered on top of the
// synchronous statistics: any failure here surfaces as a distinct unavailable
// state and never touches the numeric snapshots.
func (s *Service) GenerateNarrative(ctx context.Context, datasetID string) (*ports.Narrative, error) {
	if s.narrative == nil {
		return nil, dErrors.Wrap(sentinel.ErrUnavailable, dErrors.CodeUnavailable, "narrative generator not configured")
	}

	aggregated, grid, err := s.Snapshots(ctx, datasetID)
	if err != nil {
		return nil, err
	}
	dataset, err := s.dataset(ctx, datasetID)
	if err != nil {
		return nil, err
	}

	narrative, err := s.narrative.Generate(ctx, ports.NarrativeRequest{
		DatasetLabel: dataset.Label,
		Aggregated:   aggregated,
		Grid:         grid,
	})
	if err != nil {
		ports.LogAudit(ctx, s.logger, s.publisher, audit.EventNarrativeFailed, datasetID, map[string]string{
			"error": err.Error(),
		})
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "narrative unavailable")
	}

	ports.LogAudit(ctx, s.logger, s.publisher, audit.EventNarrativeGenerated, datasetID, nil)
	return narrative, nil
}
