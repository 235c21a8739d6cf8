package segment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"cna/internal/workforce/models"
)

var testNow = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func yearsAgo(years float64) *time.Time {
	t := testNow.Add(-time.Duration(years * daysPerYear * 24 * float64(time.Hour)))
	return &t
}

func ratingsWithMean(mean float64) []models.CapabilityRating {
	return []models.CapabilityRating{
		{QuestionCode: "A1", CurrentScore: mean},
		{QuestionCode: "B1", CurrentScore: mean},
	}
}

func TestPerformance(t *testing.T) {
	tests := []struct {
		in   string
		want Band
	}{
		{"5", High},
		{"4", High},
		{"3", Moderate},
		{"2", Low},
		{"1", Low},
		{"", Low},
		{"not a number", Low},
		{" 4 ", High},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Performance(tt.in), "rating %q", tt.in)
	}
}

func TestPotential(t *testing.T) {
	assert.Equal(t, High, Potential(ratingsWithMean(8)))
	assert.Equal(t, High, Potential(ratingsWithMean(9.5)))
	assert.Equal(t, Moderate, Potential(ratingsWithMean(5)))
	assert.Equal(t, Moderate, Potential(ratingsWithMean(7.9)))
	assert.Equal(t, Low, Potential(ratingsWithMean(4.9)))
	assert.Equal(t, Low, Potential(nil))
}

func TestRestricted(t *testing.T) {
	t.Run("casual employment restricts regardless of tenure", func(t *testing.T) {
		officer := models.OfficerRecord{
			EmploymentStatus: "Casual",
			CommencementDate: yearsAgo(10),
		}
		assert.True(t, Restricted(officer, testNow))
	})

	t.Run("missing commencement date reads as zero tenure", func(t *testing.T) {
		officer := models.OfficerRecord{EmploymentStatus: "Permanent"}
		assert.True(t, Restricted(officer, testNow))
	})

	t.Run("short tenure restricts", func(t *testing.T) {
		officer := models.OfficerRecord{
			EmploymentStatus: "Permanent",
			CommencementDate: yearsAgo(1.5),
		}
		assert.True(t, Restricted(officer, testNow))
	})

	t.Run("permanent with tenure is eligible", func(t *testing.T) {
		officer := models.OfficerRecord{
			EmploymentStatus: "Permanent",
			CommencementDate: yearsAgo(5),
		}
		assert.False(t, Restricted(officer, testNow))
	})
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		officer models.OfficerRecord
		want    string
	}{
		{
			name: "permanent high performer with high potential is top talent",
			officer: models.OfficerRecord{
				SPARating:         "5",
				CapabilityRatings: ratingsWithMean(9),
				EmploymentStatus:  "Permanent",
				CommencementDate:  yearsAgo(5),
			},
			want: models.SegmentTopTalent,
		},
		{
			name: "casual high performer with high potential drops to specialist expert",
			officer: models.OfficerRecord{
				SPARating:         "5",
				CapabilityRatings: ratingsWithMean(9),
				EmploymentStatus:  "Casual",
				CommencementDate:  yearsAgo(5),
			},
			want: models.SegmentSpecialistExpert,
		},
		{
			name: "high potential without a commencement date drops to specialist expert",
			officer: models.OfficerRecord{
				SPARating:         "4",
				CapabilityRatings: ratingsWithMean(8),
				EmploymentStatus:  "Permanent",
			},
			want: models.SegmentSpecialistExpert,
		},
		{
			name: "restricted future leader drops to solid performer",
			officer: models.OfficerRecord{
				SPARating:         "3",
				CapabilityRatings: ratingsWithMean(9),
				EmploymentStatus:  "Permanent",
				CommencementDate:  yearsAgo(1),
			},
			want: models.SegmentSolidPerformer,
		},
		{
			name: "restriction does not gate the low performance cell",
			officer: models.OfficerRecord{
				SPARating:         "1",
				CapabilityRatings: ratingsWithMean(9),
				EmploymentStatus:  "Casual",
			},
			want: models.SegmentUnrealizedPotential,
		},
		{
			name: "moderate potential is never gated",
			officer: models.OfficerRecord{
				SPARating:         "4",
				CapabilityRatings: ratingsWithMean(6),
				EmploymentStatus:  "Casual",
			},
			want: models.SegmentHighAchiever,
		},
		{
			name: "low everything",
			officer: models.OfficerRecord{
				SPARating:         "1",
				CapabilityRatings: ratingsWithMean(2),
			},
			want: models.SegmentRiskLowPerformer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.officer, testNow))
		})
	}
}

func TestSegmentAt(t *testing.T) {
	officers := []models.OfficerRecord{
		// Top Talent
		{SPARating: "5", CapabilityRatings: ratingsWithMean(9), EmploymentStatus: "Permanent", CommencementDate: yearsAgo(5)},
		// Key Contributor
		{SPARating: "3", CapabilityRatings: ratingsWithMean(6)},
		// Risk / Low Performer
		{SPARating: "1", CapabilityRatings: ratingsWithMean(2)},
		// Inconsistent
		{SPARating: "1", CapabilityRatings: ratingsWithMean(6)},
	}

	grid := SegmentAt(officers, testNow)

	assert.Equal(t, 4, grid.TotalOfficers)
	assert.Len(t, grid.Counts, 9, "all nine cells present even when zero")
	assert.Equal(t, 1, grid.Counts[models.SegmentTopTalent])
	assert.Equal(t, 1, grid.Counts[models.SegmentKeyContributor])
	assert.Equal(t, 1, grid.Counts[models.SegmentRiskLowPerformer])
	assert.Equal(t, 1, grid.Counts[models.SegmentInconsistent])
	assert.Equal(t, 0, grid.Counts[models.SegmentFutureLeader])

	assert.InDelta(t, 25.0, grid.CorePercent, 1e-9)
	assert.InDelta(t, 25.0, grid.HighPotentialPoolPercent, 1e-9)
	assert.InDelta(t, 50.0, grid.AtRiskPercent, 1e-9)
}

func TestSegmentAtEmpty(t *testing.T) {
	grid := SegmentAt(nil, testNow)
	assert.Zero(t, grid.TotalOfficers)
	assert.Len(t, grid.Counts, 9)
	assert.Zero(t, grid.CorePercent)
	assert.Zero(t, grid.HighPotentialPoolPercent)
	assert.Zero(t, grid.AtRiskPercent)
}
