// Package models defines the record shapes flowing through the workforce
// module. Establishment and officer records are immutable once imported;
// AggregatedData and SegmentationGrid are derived value objects recomputed
// wholesale from the collections, never mutated in place.
package models

import "time"

// EstablishmentRecord is one authorized position from the establishment
// register. Free-text fields arrive normalized by the boundary layer but keep
// their source vocabulary (grade "14-14A", occupant vacancy markers).
type EstablishmentRecord struct {
	PositionNumber string `json:"position_number"`
	Designation    string `json:"designation"`
	Grade          string `json:"grade"`
	Division       string `json:"division"`
	Occupant       string `json:"occupant"`
	Status         string `json:"status"`
	Gender         string `json:"gen"` // "M", "F", or ""
}

// CapabilityRating is one self-assessed score from the survey. QuestionCode's
// leading letter keys the rating to a capability pillar.
type CapabilityRating struct {
	QuestionCode string  `json:"question_code"`
	CurrentScore float64 `json:"current_score"` // 0-10
	GapScore     float64 `json:"gap_score"`
	GapCategory  string  `json:"gap_category"`
}

// OfficerRecord is one survey submission. Submissions need not correspond 1:1
// to establishment positions: zero, one, or (in malformed data) several
// officers may map to the same position.
type OfficerRecord struct {
	Name                string             `json:"name"`
	Division            string             `json:"division"`
	Position            string             `json:"position"`
	PositionNumber      string             `json:"position_number"`
	Grade               string             `json:"grade"`
	Gender              string             `json:"gender"`
	Age                 int                `json:"age"`
	YearsOfExperience   float64            `json:"years_of_experience"`
	EmploymentStatus    string             `json:"employment_status"`
	CommencementDate    *time.Time         `json:"commencement_date,omitempty"`
	SPARating           string             `json:"spa_rating"` // string-encoded 1-5
	CapabilityRatings   []CapabilityRating `json:"capability_ratings"`
	JobQualification    string             `json:"job_qualification"`
	LifecycleStage      string             `json:"lifecycle_stage"`
	TrainingPreferences []string           `json:"training_preferences"`
}

// PillarScore pairs a pillar with an averaged score.
type PillarScore struct {
	Pillar string  `json:"pillar"`
	Score  float64 `json:"score"`
}

// DivisionStats rolls establishment and survey figures up per division.
// Ceiling and Actual come from the register's division field; FilledByCNA and
// the gap counts come from the officer's self-reported division. The two
// taxonomies are not guaranteed to agree; the split is an accepted
// source-of-truth property of the data, not a bug.
type DivisionStats struct {
	Ceiling     int `json:"ceiling"`
	Actual      int `json:"actual"`
	FilledByCNA int `json:"filled_by_cna"`
	SkillGaps   int `json:"skill_gaps"`
	QualGaps    int `json:"qual_gaps"`
}

// GESIMetrics carries the gender equity and social inclusion derivations.
type GESIMetrics struct {
	FemaleSeniorityRate      float64 `json:"female_seniority_rate"`
	DisabilityInclusionCount int     `json:"disability_inclusion_count"`
	GESIAwarenessScore       float64 `json:"gesi_awareness_score"`
}

// Discrepancy records a detected inconsistency between an establishment
// record and the survey submission matched to it.
type Discrepancy struct {
	Type           string `json:"type"`
	OfficerName    string `json:"officer_name"`
	PositionNumber string `json:"position_number"`
	Details        string `json:"details"`
}

// DiscrepancyGenderMismatch is the only discrepancy type detected today.
const DiscrepancyGenderMismatch = "Gender Mismatch"

// AggregatedData is the dashboard snapshot. Every field is pure function
// output over the two input collections; identical inputs produce deep-equal
// snapshots.
type AggregatedData struct {
	TotalPositions  int     `json:"total_positions"`
	OnStrength      int     `json:"on_strength"`
	VacantPositions int     `json:"vacant_positions"`
	VacancyRate     float64 `json:"vacancy_rate"`

	CNAParticipants   int     `json:"cna_participants"`
	TotalResponses    int     `json:"total_responses"`
	ParticipationRate float64 `json:"participation_rate"`

	BaselineScore float64 `json:"baseline_score"`

	SkillGapsCount         int `json:"skill_gaps_count"`
	QualificationGapsCount int `json:"qualification_gaps_count"`
	RetirementRiskCount    int `json:"retirement_risk_count"`

	GapSector  PillarScore `json:"gap_sector"`
	PeakSector PillarScore `json:"peak_sector"`

	PillarAverages       []PillarScore `json:"pillar_averages"`
	PillarAveragesMale   []PillarScore `json:"pillar_averages_male"`
	PillarAveragesFemale []PillarScore `json:"pillar_averages_female"`

	DataIntegrityScore float64 `json:"data_integrity_score"`

	DivisionStats map[string]DivisionStats `json:"division_stats"`

	GESI GESIMetrics `json:"gesi_metrics"`

	Discrepancies []Discrepancy `json:"discrepancies"`
}

// Segment names for the 9-box talent grid.
const (
	SegmentTopTalent           = "Top Talent"
	SegmentFutureLeader        = "Future Leader"
	SegmentUnrealizedPotential = "Unrealized Potential"
	SegmentHighAchiever        = "High Achiever"
	SegmentKeyContributor      = "Key Contributor"
	SegmentInconsistent        = "Inconsistent"
	SegmentSpecialistExpert    = "Specialist Expert"
	SegmentSolidPerformer      = "Solid Performer"
	SegmentRiskLowPerformer    = "Risk / Low Performer"
)

// SegmentationGrid is the 9-box performance x potential snapshot, computed
// independently of AggregatedData from the survey collection alone.
type SegmentationGrid struct {
	Counts map[string]int `json:"counts"`

	TotalOfficers int `json:"total_officers"`

	CorePercent              float64 `json:"core_percent"`
	HighPotentialPoolPercent float64 `json:"high_potential_pool_percent"`
	AtRiskPercent            float64 `json:"at_risk_percent"`
}

// Dataset bundles one imported CNA round: the register, the deduplicated
// survey set, and the raw response row count before deduplication.
type Dataset struct {
	ID               string                `json:"id"`
	Label            string                `json:"label"`
	ImportedAt       time.Time             `json:"imported_at"`
	Establishment    []EstablishmentRecord `json:"establishment"`
	Officers         []OfficerRecord       `json:"officers"`
	RawResponseCount int                   `json:"raw_response_count"`
}
