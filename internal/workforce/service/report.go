package service

import (
	"context"

	"cna/internal/export"
)

// Report builds the export document for a dataset from freshly computed
// snapshots. The narrative section is omitted here; callers wanting prose
// request it separately so a slow or absent generator cannot stall exports.
func (s *Service) Report(ctx context.Context, datasetID string) (*export.Document, error) {
	dataset, err := s.dataset(ctx, datasetID)
	if err != nil {
		return nil, err
	}
	aggregated, grid, err := s.Snapshots(ctx, datasetID)
	if err != nil {
		return nil, err
	}
	doc := export.BuildReport(dataset.Label, aggregated, grid, nil)
	return &doc, nil
}
