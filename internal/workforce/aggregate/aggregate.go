// Package aggregate derives the dashboard snapshot from the establishment
// register and the survey set. Everything here is pure and total: no I/O, no
// shared state, and every numeric derivation carries an explicit
// zero-division guard, so the function is safe to call repeatedly and
// concurrently over any input, including empty collections.
package aggregate

import (
	"fmt"
	"strings"

	"cna/internal/workforce/gaps"
	"cna/internal/workforce/identity"
	"cna/internal/workforce/models"
	"cna/internal/workforce/pillars"
)

// Retirement risk is flagged from this age onward.
const retirementAge = 55

// Female seniority is measured over positions at this grade or above.
const seniorGradeFloor = 13

// Aggregate computes one immutable statistics snapshot. rawResponseCount
// distinguishes raw import rows (which may contain duplicates) from the
// deduplicated officers slice; pass 0 to default it to len(officers).
func Aggregate(establishment []models.EstablishmentRecord, officers []models.OfficerRecord, rawResponseCount int) *models.AggregatedData {
	out := &models.AggregatedData{
		TotalPositions:  len(establishment),
		CNAParticipants: len(officers),
		DivisionStats:   make(map[string]models.DivisionStats),
		Discrepancies:   []models.Discrepancy{},
	}

	for _, rec := range establishment {
		stats := out.DivisionStats[rec.Division]
		stats.Ceiling++
		if identity.IsVacant(rec.Occupant, rec.Status) {
			out.VacantPositions++
		} else {
			out.OnStrength++
			stats.Actual++
		}
		out.DivisionStats[rec.Division] = stats
	}
	if out.TotalPositions > 0 {
		out.VacancyRate = float64(out.VacantPositions) / float64(out.TotalPositions) * 100
	}

	out.TotalResponses = rawResponseCount
	if out.TotalResponses == 0 {
		out.TotalResponses = out.CNAParticipants
	}
	if out.OnStrength > 0 {
		out.ParticipationRate = float64(out.CNAParticipants) / float64(out.OnStrength)
	}

	avgs := pillars.Score(officers)
	out.PillarAverages = avgs.Overall
	out.PillarAveragesMale = avgs.Male
	out.PillarAveragesFemale = avgs.Female
	out.BaselineScore = pillars.Baseline(avgs.Overall)
	out.GapSector, out.PeakSector = pillars.Extremes(avgs.Overall)

	for _, officer := range officers {
		stats := out.DivisionStats[officer.Division]
		stats.FilledByCNA++
		switch gaps.Classify(officer) {
		case gaps.Skill:
			out.SkillGapsCount++
			stats.SkillGaps++
		case gaps.Qualification:
			out.QualificationGapsCount++
			stats.QualGaps++
		}
		if officer.Age >= retirementAge {
			out.RetirementRiskCount++
		}
		out.DivisionStats[officer.Division] = stats
	}

	out.GESI = gesiMetrics(establishment, officers)
	out.Discrepancies = findDiscrepancies(establishment, officers)

	if out.TotalPositions > 0 {
		out.DataIntegrityScore = float64(out.TotalPositions-len(out.Discrepancies)) / float64(out.TotalPositions) * 100
	} else {
		out.DataIntegrityScore = 100
	}

	return out
}

func gesiMetrics(establishment []models.EstablishmentRecord, officers []models.OfficerRecord) models.GESIMetrics {
	var m models.GESIMetrics

	senior, seniorFemale := 0, 0
	for _, rec := range establishment {
		if identity.LeadingInt(rec.Grade) < seniorGradeFloor {
			continue
		}
		senior++
		if identity.GenderCode(rec.Gender) == "F" {
			seniorFemale++
		}
	}
	if senior > 0 {
		m.FemaleSeniorityRate = float64(seniorFemale) / float64(senior)
	}

	awarenessSum := 0.0
	awarenessN := 0
	for _, officer := range officers {
		if hasInclusionInterest(officer.TrainingPreferences) {
			m.DisabilityInclusionCount++
		}
		for _, r := range officer.CapabilityRatings {
			if r.QuestionCode == pillars.GESIAwarenessQuestion {
				awarenessSum += r.CurrentScore
				awarenessN++
			}
		}
	}
	if awarenessN > 0 {
		m.GESIAwarenessScore = awarenessSum / float64(awarenessN)
	}

	return m
}

func hasInclusionInterest(preferences []string) bool {
	for _, p := range preferences {
		p = strings.ToLower(p)
		if strings.Contains(p, "disability") || strings.Contains(p, "inclusion") {
			return true
		}
	}
	return false
}

// findDiscrepancies cross-checks each matched officer against the register.
// Only gender mismatches are detected today; both sides must report a gender
// for a mismatch to count.
func findDiscrepancies(establishment []models.EstablishmentRecord, officers []models.OfficerRecord) []models.Discrepancy {
	resolver := identity.NewResolver(establishment)
	out := []models.Discrepancy{}
	for _, officer := range officers {
		rec := resolver.Resolve(officer)
		if rec == nil {
			continue
		}
		officerGender := identity.GenderCode(officer.Gender)
		registerGender := identity.GenderCode(rec.Gender)
		if officerGender == "" || registerGender == "" || officerGender == registerGender {
			continue
		}
		out = append(out, models.Discrepancy{
			Type:           models.DiscrepancyGenderMismatch,
			OfficerName:    officer.Name,
			PositionNumber: rec.PositionNumber,
			Details: fmt.Sprintf("survey reports %q, register records %q",
				officer.Gender, rec.Gender),
		})
	}
	return out
}
