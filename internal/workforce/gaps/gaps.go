// Package gaps classifies individual capability gaps. This is pure domain
// logic - no I/O, no side effects.
package gaps

import (
	"strings"

	"cna/internal/workforce/identity"
	"cna/internal/workforce/models"
)

// Category is the per-officer gap assessment.
type Category string

const (
	// Qualification means the officer's grade demands a credential the
	// qualification text does not show. Takes precedence over skill gaps.
	Qualification Category = "Qualification"
	// Skill means at least one capability rating sits below the proficiency bar.
	Skill Category = "Skill"
	// Aligned means no gap was detected.
	Aligned Category = "Aligned"
)

// Grade thresholds at which credentials become mandatory.
const (
	degreeGradeFloor  = 14
	mastersGradeFloor = 18
)

// proficiencyBar is the capability score below which a skill gap is flagged.
const proficiencyBar = 7

// Classify assesses one officer. Rule chain, first match wins:
//  1. Grade >= 14 without a degree, or grade >= 18 without a masters
//     (or postgraduate) qualification -> Qualification.
//  2. Any capability rating below the proficiency bar -> Skill.
//  3. Otherwise Aligned.
func Classify(officer models.OfficerRecord) Category {
	grade := identity.LeadingInt(officer.Grade)
	qual := strings.ToLower(officer.JobQualification)

	needsDegree := grade >= degreeGradeFloor &&
		!strings.Contains(qual, "degree") && !strings.Contains(qual, "bachelor")
	needsMasters := grade >= mastersGradeFloor &&
		!strings.Contains(qual, "masters") && !strings.Contains(qual, "post")

	if needsDegree || needsMasters {
		return Qualification
	}

	for _, rating := range officer.CapabilityRatings {
		if rating.CurrentScore < proficiencyBar {
			return Skill
		}
	}
	return Aligned
}
