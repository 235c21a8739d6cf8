// Package dataset provides the dataset store implementations. The memory
// store is the default; the postgres store backs multi-instance deployments.
package dataset

import (
	"context"
	"sort"
	"sync"

	"cna/internal/workforce/models"
	"cna/pkg/platform/sentinel"
)

// InMemory is a mutex-guarded map store. Suitable for single-instance
// deployments and tests.
type InMemory struct {
	mu       sync.RWMutex
	datasets map[string]*models.Dataset
}

// NewInMemory constructs an empty in-memory dataset store.
func NewInMemory() *InMemory {
	return &InMemory{datasets: make(map[string]*models.Dataset)}
}

// Create stores a dataset under its ID.
func (s *InMemory) Create(ctx context.Context, dataset *models.Dataset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.datasets[dataset.ID]; exists {
		return sentinel.ErrConflict
	}
	s.datasets[dataset.ID] = clone(dataset)
	return nil
}

// Get retrieves a dataset by ID.
func (s *InMemory) Get(ctx context.Context, id string) (*models.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	dataset, ok := s.datasets[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return clone(dataset), nil
}

// List returns dataset headers (no record collections), newest first.
func (s *InMemory) List(ctx context.Context) ([]models.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Dataset, 0, len(s.datasets))
	for _, d := range s.datasets {
		out = append(out, models.Dataset{
			ID:               d.ID,
			Label:            d.Label,
			ImportedAt:       d.ImportedAt,
			RawResponseCount: d.RawResponseCount,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ImportedAt.After(out[j].ImportedAt) })
	return out, nil
}

// clone copies a dataset so the store and its callers never share slices.
func clone(d *models.Dataset) *models.Dataset {
	out := *d
	out.Establishment = append([]models.EstablishmentRecord(nil), d.Establishment...)
	out.Officers = append([]models.OfficerRecord(nil), d.Officers...)
	for i, o := range out.Officers {
		out.Officers[i].CapabilityRatings = append([]models.CapabilityRating(nil), o.CapabilityRatings...)
		out.Officers[i].TrainingPreferences = append([]string(nil), o.TrainingPreferences...)
		if o.CommencementDate != nil {
			t := *o.CommencementDate
			out.Officers[i].CommencementDate = &t
		}
	}
	return &out
}

// Delete removes a dataset.
func (s *InMemory) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.datasets[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.datasets, id)
	return nil
}
