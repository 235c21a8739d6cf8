package handler

import (
	"time"

	"cna/internal/workforce/models"
	"cna/internal/workforce/ports"
	"cna/internal/workforce/service"
)

// ImportResponse confirms a stored dataset.
type ImportResponse struct {
	DatasetID       string `json:"dataset_id"`
	PositionCount   int    `json:"position_count"`
	OfficerCount    int    `json:"officer_count"`
	DuplicateCount  int    `json:"duplicate_count"`
	TotalPositions  int    `json:"total_positions"`
	CNAParticipants int    `json:"cna_participants"`
}

func FromImportResult(result *service.ImportResult) ImportResponse {
	return ImportResponse{
		DatasetID:       result.DatasetID,
		PositionCount:   result.PositionCount,
		OfficerCount:    result.OfficerCount,
		DuplicateCount:  result.DuplicateCount,
		TotalPositions:  result.TotalPositions,
		CNAParticipants: result.CNAParticipants,
	}
}

// DatasetHeader is one dataset in the listing.
type DatasetHeader struct {
	ID               string `json:"id"`
	Label            string `json:"label"`
	ImportedAt       string `json:"imported_at"`
	RawResponseCount int    `json:"raw_response_count"`
}

func FromDatasets(datasets []models.Dataset) []DatasetHeader {
	out := make([]DatasetHeader, 0, len(datasets))
	for _, d := range datasets {
		out = append(out, DatasetHeader{
			ID:               d.ID,
			Label:            d.Label,
			ImportedAt:       d.ImportedAt.UTC().Format(time.RFC3339),
			RawResponseCount: d.RawResponseCount,
		})
	}
	return out
}

// Narrative response states.
const (
	NarrativeStatusReady       = "ready"
	NarrativeStatusUnavailable = "narrative_unavailable"
)

// NarrativeResponse wraps the optional narrative annotation with its state.
// The unavailable state is deliberately distinct from the error envelope so
// clients can tell "no narrative" from "no data".
type NarrativeResponse struct {
	Status    string           `json:"status"`
	Reason    string           `json:"reason,omitempty"`
	Narrative *ports.Narrative `json:"narrative,omitempty"`
}
