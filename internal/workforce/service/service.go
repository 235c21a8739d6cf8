// Package service orchestrates dataset import, snapshot computation, and the
// optional narrative annotation. The computation core stays pure; this layer
// owns stores, caching, auditing, and metrics.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"cna/internal/workforce/aggregate"
	"cna/internal/workforce/metrics"
	"cna/internal/workforce/models"
	"cna/internal/workforce/normalize"
	"cna/internal/workforce/ports"
	"cna/internal/workforce/segment"
	dErrors "cna/pkg/domain-errors"
	"cna/pkg/platform/audit"
	"cna/pkg/platform/sentinel"
	"cna/pkg/requestcontext"
)

// Service exposes the workforce analytics operations.
type Service struct {
	datasets  ports.DatasetStore
	cache     ports.SnapshotCache
	narrative ports.NarrativeGenerator
	publisher ports.AuditPublisher
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithSnapshotCache(cache ports.SnapshotCache) Option {
	return func(s *Service) { s.cache = cache }
}

func WithNarrativeGenerator(generator ports.NarrativeGenerator) Option {
	return func(s *Service) { s.narrative = generator }
}

func WithAuditPublisher(publisher ports.AuditPublisher) Option {
	return func(s *Service) { s.publisher = publisher }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// New constructs a Service.
func New(datasets ports.DatasetStore, opts ...Option) (*Service, error) {
	if datasets == nil {
		return nil, errors.New("dataset store is required")
	}
	s := &Service{datasets: datasets}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// ImportRequest carries one wholesale dataset import.
type ImportRequest struct {
	Label            string
	Establishment    []normalize.RawEstablishmentRow
	Officers         []normalize.RawOfficerRow
	RawResponseCount int
}

// ImportResult summarizes a stored dataset.
type ImportResult struct {
	DatasetID       string
	PositionCount   int
	OfficerCount    int
	DuplicateCount  int
	TotalPositions  int
	CNAParticipants int
}

// Import normalizes raw rows, stores the dataset, and eagerly computes and
// caches the aggregate snapshot.
func (s *Service) Import(ctx context.Context, req ImportRequest) (*ImportResult, error) {
	if len(req.Establishment) == 0 && len(req.Officers) == 0 {
		s.metrics.IncImport("rejected")
		return nil, dErrors.New(dErrors.CodeBadRequest, "dataset must contain establishment or officer rows")
	}

	establishment := normalize.Establishment(req.Establishment)
	officers, rawCount := normalize.Officers(req.Officers)
	if req.RawResponseCount > 0 {
		rawCount = req.RawResponseCount
	}

	dataset := &models.Dataset{
		ID:               uuid.NewString(),
		Label:            req.Label,
		ImportedAt:       time.Now(),
		Establishment:    establishment,
		Officers:         officers,
		RawResponseCount: rawCount,
	}

	if err := s.datasets.Create(ctx, dataset); err != nil {
		s.metrics.IncImport("rejected")
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store dataset")
	}
	s.metrics.IncImport("ok")

	snapshot := s.computeAggregate(dataset)
	s.cacheSnapshot(ctx, dataset.ID, snapshot)

	ports.LogAudit(ctx, s.logger, s.publisher, audit.EventDatasetImported, dataset.ID, map[string]string{
		"label":     dataset.Label,
		"positions": strconv.Itoa(len(establishment)),
		"officers":  strconv.Itoa(len(officers)),
	})

	return &ImportResult{
		DatasetID:       dataset.ID,
		PositionCount:   len(establishment),
		OfficerCount:    len(officers),
		DuplicateCount:  rawCount - len(officers),
		TotalPositions:  snapshot.TotalPositions,
		CNAParticipants: snapshot.CNAParticipants,
	}, nil
}

// Summary returns the aggregate snapshot for a dataset, cache-aside when a
// snapshot cache is configured.
func (s *Service) Summary(ctx context.Context, datasetID string) (*models.AggregatedData, error) {
	if s.cache != nil {
		snapshot, err := s.cache.Get(ctx, datasetID)
		switch {
		case err == nil:
			s.metrics.IncCacheAccess("hit")
			return snapshot, nil
		case errors.Is(err, sentinel.ErrNotFound):
			s.metrics.IncCacheAccess("miss")
		default:
			// Cache trouble must never block the synchronously computable snapshot.
			s.metrics.IncCacheAccess("error")
			if s.logger != nil {
				s.logger.WarnContext(ctx, "snapshot cache read failed", "dataset_id", datasetID, "error", err)
			}
		}
	}

	dataset, err := s.dataset(ctx, datasetID)
	if err != nil {
		return nil, err
	}
	snapshot := s.computeAggregate(dataset)
	s.cacheSnapshot(ctx, datasetID, snapshot)
	ports.LogAudit(ctx, s.logger, s.publisher, audit.EventSnapshotComputed, datasetID, map[string]string{
		"view": "summary",
	})
	return snapshot, nil
}

// Segmentation returns the 9-box grid for a dataset.
func (s *Service) Segmentation(ctx context.Context, datasetID string) (*models.SegmentationGrid, error) {
	dataset, err := s.dataset(ctx, datasetID)
	if err != nil {
		return nil, err
	}
	return segment.SegmentAt(dataset.Officers, requestcontext.Now(ctx)), nil
}

// Snapshots computes both derived views concurrently. The two computations
// are independent consumers of the same collections.
func (s *Service) Snapshots(ctx context.Context, datasetID string) (*models.AggregatedData, *models.SegmentationGrid, error) {
	dataset, err := s.dataset(ctx, datasetID)
	if err != nil {
		return nil, nil, err
	}

	var (
		aggregated *models.AggregatedData
		grid       *models.SegmentationGrid
	)
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		aggregated = s.computeAggregate(dataset)
		return nil
	})
	now := requestcontext.Now(ctx)
	g.Go(func() error {
		grid = segment.SegmentAt(dataset.Officers, now)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	ports.LogAudit(ctx, s.logger, s.publisher, audit.EventSnapshotComputed, datasetID, map[string]string{
		"view": "combined",
	})
	return aggregated, grid, nil
}

// ListDatasets returns dataset headers, newest first.
func (s *Service) ListDatasets(ctx context.Context) ([]models.Dataset, error) {
	datasets, err := s.datasets.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list datasets")
	}
	return datasets, nil
}

// DeleteDataset removes a dataset and its cached snapshot.
func (s *Service) DeleteDataset(ctx context.Context, datasetID string) error {
	if err := s.datasets.Delete(ctx, datasetID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.Wrap(err, dErrors.CodeNotFound, "dataset not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete dataset")
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, datasetID); err != nil && s.logger != nil {
			s.logger.WarnContext(ctx, "snapshot invalidation failed", "dataset_id", datasetID, "error", err)
		}
	}
	ports.LogAudit(ctx, s.logger, s.publisher, audit.EventDatasetDeleted, datasetID, nil)
	return nil
}

func (s *Service) dataset(ctx context.Context, datasetID string) (*models.Dataset, error) {
	dataset, err := s.datasets.Get(ctx, datasetID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Wrap(err, dErrors.CodeNotFound, "dataset not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load dataset")
	}
	return dataset, nil
}

func (s *Service) computeAggregate(dataset *models.Dataset) *models.AggregatedData {
	start := time.Now()
	snapshot := aggregate.Aggregate(dataset.Establishment, dataset.Officers, dataset.RawResponseCount)
	s.metrics.ObserveAggregate(time.Since(start))
	return snapshot
}

func (s *Service) cacheSnapshot(ctx context.Context, datasetID string, snapshot *models.AggregatedData) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, datasetID, snapshot); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "snapshot cache write failed", "dataset_id", datasetID, "error", err)
	}
}
