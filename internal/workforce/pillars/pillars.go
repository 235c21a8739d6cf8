// Package pillars groups capability ratings into the six fixed capability
// domains and computes per-officer, organization-wide, and per-gender
// averages. Officers with no rating in a pillar are skipped for that pillar,
// never counted as zero.
package pillars

import (
	"strings"

	"cna/internal/workforce/identity"
	"cna/internal/workforce/models"
)

// Pillar is one capability domain, keyed by the leading letter of rating
// question codes.
type Pillar struct {
	Prefix string
	Name   string
}

// Pillars lists the six domains in declaration order. Tie-breaks in sector
// extremes follow this order.
var Pillars = []Pillar{
	{Prefix: "A", Name: "Strategic Alignment"},
	{Prefix: "B", Name: "Leadership & Management"},
	{Prefix: "C", Name: "Technical Competence"},
	{Prefix: "D", Name: "Digital Literacy"},
	{Prefix: "E", Name: "Communication & Engagement"},
	{Prefix: "F", Name: "GESI Awareness"},
}

// GESIAwarenessQuestion is the designated question code whose scores feed the
// GESI awareness metric.
const GESIAwarenessQuestion = "F1"

// NoData is reported for sector extremes when no pillar has any rating.
const NoData = "N/A"

// OfficerScore is the mean of one officer's ratings within a pillar. The
// second return is false when the officer has no rating in the pillar.
func OfficerScore(officer models.OfficerRecord, pillar Pillar) (float64, bool) {
	sum := 0.0
	n := 0
	for _, r := range officer.CapabilityRatings {
		if strings.HasPrefix(r.QuestionCode, pillar.Prefix) {
			sum += r.CurrentScore
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// Averages holds organization-wide pillar averages plus the per-gender
// sub-averages. Each slice contains only pillars with at least one
// contributing officer, in declaration order.
type Averages struct {
	Overall []models.PillarScore
	Male    []models.PillarScore
	Female  []models.PillarScore
}

// Score computes all pillar averages over the survey set. Officers with an
// unset gender contribute to the overall average but to neither sub-average.
func Score(officers []models.OfficerRecord) Averages {
	var out Averages
	for _, p := range Pillars {
		var sum, maleSum, femaleSum float64
		var n, maleN, femaleN int
		for _, o := range officers {
			score, ok := OfficerScore(o, p)
			if !ok {
				continue
			}
			sum += score
			n++
			switch identity.GenderCode(o.Gender) {
			case "M":
				maleSum += score
				maleN++
			case "F":
				femaleSum += score
				femaleN++
			}
		}
		if n > 0 {
			out.Overall = append(out.Overall, models.PillarScore{Pillar: p.Name, Score: sum / float64(n)})
		}
		if maleN > 0 {
			out.Male = append(out.Male, models.PillarScore{Pillar: p.Name, Score: maleSum / float64(maleN)})
		}
		if femaleN > 0 {
			out.Female = append(out.Female, models.PillarScore{Pillar: p.Name, Score: femaleSum / float64(femaleN)})
		}
	}
	return out
}

// Baseline is the mean of the organization-wide pillar averages, over pillars
// with data. Zero when no pillar has any rating.
func Baseline(overall []models.PillarScore) float64 {
	if len(overall) == 0 {
		return 0
	}
	sum := 0.0
	for _, ps := range overall {
		sum += ps.Score
	}
	return sum / float64(len(overall))
}

// Extremes returns the lowest (gap) and highest (peak) scoring pillars. Ties
// keep the earlier-declared pillar. With no data both report N/A at zero.
func Extremes(overall []models.PillarScore) (gap, peak models.PillarScore) {
	if len(overall) == 0 {
		na := models.PillarScore{Pillar: NoData, Score: 0}
		return na, na
	}
	gap, peak = overall[0], overall[0]
	for _, ps := range overall[1:] {
		if ps.Score < gap.Score {
			gap = ps
		}
		if ps.Score > peak.Score {
			peak = ps
		}
	}
	return gap, peak
}
