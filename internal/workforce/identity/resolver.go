package identity

import "cna/internal/workforce/models"

// Resolver indexes an establishment register for officer matching. Matching
// by position number takes precedence over the composite name|division key
// when both sides carry a non-empty position number. Unmatched officers
// resolve to nil rather than an error.
type Resolver struct {
	byPosition map[string]*models.EstablishmentRecord
	byKey      map[string]*models.EstablishmentRecord
}

// NewResolver builds lookup indexes over the register. Duplicate position
// numbers keep the first record seen, matching register row order.
func NewResolver(establishment []models.EstablishmentRecord) *Resolver {
	r := &Resolver{
		byPosition: make(map[string]*models.EstablishmentRecord, len(establishment)),
		byKey:      make(map[string]*models.EstablishmentRecord, len(establishment)),
	}
	for i := range establishment {
		rec := &establishment[i]
		if rec.PositionNumber != "" {
			if _, ok := r.byPosition[rec.PositionNumber]; !ok {
				r.byPosition[rec.PositionNumber] = rec
			}
		}
		key := CompositeKey(rec.Occupant, rec.Division)
		if _, ok := r.byKey[key]; !ok {
			r.byKey[key] = rec
		}
	}
	return r
}

// Resolve finds the establishment record for a survey submission, or nil when
// no match exists.
func (r *Resolver) Resolve(officer models.OfficerRecord) *models.EstablishmentRecord {
	if officer.PositionNumber != "" {
		if rec, ok := r.byPosition[officer.PositionNumber]; ok {
			return rec
		}
	}
	if rec, ok := r.byKey[CompositeKey(officer.Name, officer.Division)]; ok {
		return rec
	}
	return nil
}

// SubmittedKeys returns the set of composite keys present in the survey set.
// Positions whose occupant key is absent from this set are non-submitters.
func SubmittedKeys(officers []models.OfficerRecord) map[string]struct{} {
	keys := make(map[string]struct{}, len(officers))
	for _, o := range officers {
		keys[CompositeKey(o.Name, o.Division)] = struct{}{}
	}
	return keys
}
