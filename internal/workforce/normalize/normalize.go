// Package normalize is the typed boundary between loosely-typed import rows
// and the strict record shapes the computation core consumes. All
// string-sniffing heuristics for the source vocabularies (numeric fields as
// text, assorted date layouts, gender words) live here so the aggregation
// logic stays free of them. Malformed values fall back to zero values, never
// errors: a bad row degrades, it does not abort an import.
package normalize

import (
	"strconv"
	"strings"
	"time"

	"cna/internal/workforce/identity"
	"cna/internal/workforce/models"
	pstrings "cna/pkg/platform/strings"
)

// RawEstablishmentRow is one register row as the tabular import layer
// delivers it, everything still free text.
type RawEstablishmentRow struct {
	PositionNumber string `json:"position_number"`
	Designation    string `json:"designation"`
	Grade          string `json:"grade"`
	Division       string `json:"division"`
	Occupant       string `json:"occupant"`
	Status         string `json:"status"`
	Gen            string `json:"gen"`
}

// RawRating is one capability answer with string-encoded scores.
type RawRating struct {
	QuestionCode string `json:"question_code"`
	CurrentScore string `json:"current_score"`
	GapScore     string `json:"gap_score"`
	GapCategory  string `json:"gap_category"`
}

// RawOfficerRow is one survey response row before normalization.
type RawOfficerRow struct {
	Name                string      `json:"name"`
	Division            string      `json:"division"`
	Position            string      `json:"position"`
	PositionNumber      string      `json:"position_number"`
	Grade               string      `json:"grade"`
	Gender              string      `json:"gender"`
	Age                 string      `json:"age"`
	YearsOfExperience   string      `json:"years_of_experience"`
	EmploymentStatus    string      `json:"employment_status"`
	CommencementDate    string      `json:"commencement_date"`
	SPARating           string      `json:"spa_rating"`
	CapabilityRatings   []RawRating `json:"capability_ratings"`
	JobQualification    string      `json:"job_qualification"`
	LifecycleStage      string      `json:"lifecycle_stage"`
	TrainingPreferences []string    `json:"training_preferences"`
}

// dateLayouts covers the formats seen across source spreadsheets.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"02/01/2006",
	"2/1/2006",
	"02-Jan-2006",
}

// Establishment converts register rows into typed records. Rows are kept in
// source order; nothing is dropped, since even heavily malformed rows still
// count toward the position ceiling.
func Establishment(rows []RawEstablishmentRow) []models.EstablishmentRecord {
	out := make([]models.EstablishmentRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.EstablishmentRecord{
			PositionNumber: strings.TrimSpace(row.PositionNumber),
			Designation:    strings.TrimSpace(row.Designation),
			Grade:          strings.TrimSpace(row.Grade),
			Division:       strings.TrimSpace(row.Division),
			Occupant:       row.Occupant, // trimming happens inside the vacancy predicate
			Status:         strings.TrimSpace(row.Status),
			Gender:         identity.GenderCode(row.Gen),
		})
	}
	return out
}

// Officers converts survey rows into typed records and deduplicates them by
// composite identity key, keeping the first submission per key. The second
// return is the raw row count before deduplication, which feeds the
// totalResponses figure.
func Officers(rows []RawOfficerRow) ([]models.OfficerRecord, int) {
	out := make([]models.OfficerRecord, 0, len(rows))
	seen := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		rec := officer(row)
		key := identity.CompositeKey(rec.Name, rec.Division)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, rec)
	}
	return out, len(rows)
}

func officer(row RawOfficerRow) models.OfficerRecord {
	return models.OfficerRecord{
		Name:                strings.TrimSpace(row.Name),
		Division:            strings.TrimSpace(row.Division),
		Position:            strings.TrimSpace(row.Position),
		PositionNumber:      strings.TrimSpace(row.PositionNumber),
		Grade:               strings.TrimSpace(row.Grade),
		Gender:              identity.GenderCode(row.Gender),
		Age:                 parseInt(row.Age),
		YearsOfExperience:   parseFloat(row.YearsOfExperience),
		EmploymentStatus:    strings.TrimSpace(row.EmploymentStatus),
		CommencementDate:    parseDate(row.CommencementDate),
		SPARating:           strings.TrimSpace(row.SPARating),
		CapabilityRatings:   ratings(row.CapabilityRatings),
		JobQualification:    strings.TrimSpace(row.JobQualification),
		LifecycleStage:      strings.TrimSpace(row.LifecycleStage),
		TrainingPreferences: pstrings.DedupeAndTrim(row.TrainingPreferences),
	}
}

func ratings(raw []RawRating) []models.CapabilityRating {
	out := make([]models.CapabilityRating, 0, len(raw))
	for _, r := range raw {
		out = append(out, models.CapabilityRating{
			QuestionCode: strings.TrimSpace(r.QuestionCode),
			CurrentScore: parseFloat(r.CurrentScore),
			GapScore:     parseFloat(r.GapScore),
			GapCategory:  strings.TrimSpace(r.GapCategory),
		})
	}
	return out
}

func parseInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
