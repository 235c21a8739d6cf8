package handler

import (
	"cna/internal/workforce/normalize"
	"cna/internal/workforce/service"
)

// ImportRequest is the wire shape of a dataset import. Rows arrive as the
// tabular import layer produced them, all free text.
type ImportRequest struct {
	Label            string                          `json:"label"`
	Establishment    []normalize.RawEstablishmentRow `json:"establishment"`
	Officers         []normalize.RawOfficerRow       `json:"officers"`
	RawResponseCount int                             `json:"raw_response_count,omitempty"`
}

// ToService converts the wire request into the service request.
func (r ImportRequest) ToService() service.ImportRequest {
	return service.ImportRequest{
		Label:            r.Label,
		Establishment:    r.Establishment,
		Officers:         r.Officers,
		RawResponseCount: r.RawResponseCount,
	}
}
