// Package segment performs the nine-cell talent segmentation over the survey
// set. It is a pure classifier, independent of the aggregation snapshot; the
// narrative annotation downstream consumes its output but is never a
// dependency of the grid computation.
package segment

import (
	"strconv"
	"strings"
	"time"

	"cna/internal/workforce/models"
)

// Band is a performance or potential level.
type Band int

const (
	Low Band = iota
	Moderate
	High
)

// Eligibility and banding thresholds.
const (
	highPerformanceRating = 4   // SPA rating at or above -> High
	highPotentialMean     = 8.0 // mean capability score at or above -> High
	moderatePotentialMean = 5.0
	minTenureYears        = 2.0
	daysPerYear           = 365.25
)

// grid maps [potential][performance] to a segment name before gating.
var grid = [3][3]string{
	High: {
		High:     models.SegmentTopTalent,
		Moderate: models.SegmentFutureLeader,
		Low:      models.SegmentUnrealizedPotential,
	},
	Moderate: {
		High:     models.SegmentHighAchiever,
		Moderate: models.SegmentKeyContributor,
		Low:      models.SegmentInconsistent,
	},
	Low: {
		High:     models.SegmentSpecialistExpert,
		Moderate: models.SegmentSolidPerformer,
		Low:      models.SegmentRiskLowPerformer,
	},
}

// Performance bands the string-encoded SPA rating. Unparseable input reads
// as 0 and lands in Low.
func Performance(spaRating string) Band {
	n, _ := strconv.Atoi(strings.TrimSpace(spaRating))
	switch {
	case n >= highPerformanceRating:
		return High
	case n == 3:
		return Moderate
	default:
		return Low
	}
}

// Potential bands the mean capability score. An empty ratings list means a
// zero mean and therefore Low.
func Potential(ratings []models.CapabilityRating) Band {
	mean := 0.0
	if len(ratings) > 0 {
		sum := 0.0
		for _, r := range ratings {
			sum += r.CurrentScore
		}
		mean = sum / float64(len(ratings))
	}
	switch {
	case mean >= highPotentialMean:
		return High
	case mean >= moderatePotentialMean:
		return Moderate
	default:
		return Low
	}
}

// TenureYears computes service length at now. A missing commencement date
// reads as zero tenure.
func TenureYears(commencement *time.Time, now time.Time) float64 {
	if commencement == nil {
		return 0
	}
	return now.Sub(*commencement).Hours() / 24 / daysPerYear
}

// Restricted reports whether an officer is ineligible for the two gated
// high-potential cells: casual employment or under two years of tenure.
func Restricted(officer models.OfficerRecord, now time.Time) bool {
	if strings.Contains(strings.ToLower(officer.EmploymentStatus), "casual") {
		return true
	}
	return TenureYears(officer.CommencementDate, now) < minTenureYears
}

// Classify places one officer in the grid. Gating applies only at the two
// highest-potential, non-Low-performance cells: a restricted Top Talent drops
// to Specialist Expert and a restricted Future Leader to Solid Performer.
func Classify(officer models.OfficerRecord, now time.Time) string {
	performance := Performance(officer.SPARating)
	potential := Potential(officer.CapabilityRatings)

	name := grid[potential][performance]
	if potential == High && Restricted(officer, now) {
		switch performance {
		case High:
			name = models.SegmentSpecialistExpert
		case Moderate:
			name = models.SegmentSolidPerformer
		}
	}
	return name
}

// Segment builds the grid snapshot against the wall clock.
func Segment(officers []models.OfficerRecord) *models.SegmentationGrid {
	return SegmentAt(officers, time.Now())
}

// SegmentAt builds the grid snapshot with an injected now, keeping tenure
// derivations deterministic under test. All nine cells appear in the counts
// map even when zero.
func SegmentAt(officers []models.OfficerRecord, now time.Time) *models.SegmentationGrid {
	out := &models.SegmentationGrid{
		Counts: map[string]int{
			models.SegmentTopTalent:           0,
			models.SegmentFutureLeader:        0,
			models.SegmentUnrealizedPotential: 0,
			models.SegmentHighAchiever:        0,
			models.SegmentKeyContributor:      0,
			models.SegmentInconsistent:        0,
			models.SegmentSpecialistExpert:    0,
			models.SegmentSolidPerformer:      0,
			models.SegmentRiskLowPerformer:    0,
		},
		TotalOfficers: len(officers),
	}

	for _, officer := range officers {
		out.Counts[Classify(officer, now)]++
	}

	if out.TotalOfficers > 0 {
		total := float64(out.TotalOfficers)
		core := out.Counts[models.SegmentHighAchiever] +
			out.Counts[models.SegmentKeyContributor] +
			out.Counts[models.SegmentSolidPerformer]
		pool := out.Counts[models.SegmentTopTalent] + out.Counts[models.SegmentFutureLeader]
		risk := out.Counts[models.SegmentRiskLowPerformer] + out.Counts[models.SegmentInconsistent]

		out.CorePercent = float64(core) / total * 100
		out.HighPotentialPoolPercent = float64(pool) / total * 100
		out.AtRiskPercent = float64(risk) / total * 100
	}

	return out
}
