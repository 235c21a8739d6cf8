package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstablishment(t *testing.T) {
	rows := []RawEstablishmentRow{
		{
			PositionNumber: " P-001 ",
			Designation:    "Director ",
			Grade:          " 16",
			Division:       "Policy",
			Occupant:       "  ",
			Status:         "",
			Gen:            "Female",
		},
	}

	records := Establishment(rows)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "P-001", rec.PositionNumber)
	assert.Equal(t, "Director", rec.Designation)
	assert.Equal(t, "16", rec.Grade)
	assert.Equal(t, "F", rec.Gender)
	// Occupant keeps its raw form; the vacancy predicate trims.
	assert.Equal(t, "  ", rec.Occupant)
}

func TestOfficersDeduplication(t *testing.T) {
	rows := []RawOfficerRow{
		{Name: "A. Wari", Division: "Policy", SPARating: "4"},
		{Name: " a. wari ", Division: " POLICY ", SPARating: "2"}, // duplicate, different case
		{Name: "B. Siune", Division: "Policy"},
	}

	records, rawCount := Officers(rows)

	assert.Equal(t, 3, rawCount)
	require.Len(t, records, 2)
	// First submission wins.
	assert.Equal(t, "A. Wari", records[0].Name)
	assert.Equal(t, "4", records[0].SPARating)
	assert.Equal(t, "B. Siune", records[1].Name)
}

func TestOfficerFieldParsing(t *testing.T) {
	rows := []RawOfficerRow{
		{
			Name:              "A. Wari",
			Division:          "Policy",
			Age:               " 42 ",
			YearsOfExperience: "7.5",
			Gender:            "male",
			CommencementDate:  "2015-03-01",
			CapabilityRatings: []RawRating{
				{QuestionCode: " A1 ", CurrentScore: "8", GapScore: "1.5", GapCategory: "Minor"},
			},
		},
	}

	records, _ := Officers(rows)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, 42, rec.Age)
	assert.InDelta(t, 7.5, rec.YearsOfExperience, 1e-9)
	assert.Equal(t, "M", rec.Gender)
	require.NotNil(t, rec.CommencementDate)
	assert.Equal(t, time.Date(2015, 3, 1, 0, 0, 0, 0, time.UTC), *rec.CommencementDate)

	require.Len(t, rec.CapabilityRatings, 1)
	r := rec.CapabilityRatings[0]
	assert.Equal(t, "A1", r.QuestionCode)
	assert.InDelta(t, 8.0, r.CurrentScore, 1e-9)
	assert.InDelta(t, 1.5, r.GapScore, 1e-9)
}

func TestOfficerTrainingPreferencesDeduped(t *testing.T) {
	rows := []RawOfficerRow{
		{
			Name:                "C. Temu",
			Division:            "Policy",
			TrainingPreferences: []string{" Leadership ", "GESI", "Leadership", "", "  "},
		},
	}

	records, _ := Officers(rows)
	require.Len(t, records, 1)
	assert.Equal(t, []string{"Leadership", "GESI"}, records[0].TrainingPreferences)
}

func TestOfficerMalformedValuesDegrade(t *testing.T) {
	rows := []RawOfficerRow{
		{
			Name:              "B. Siune",
			Division:          "Policy",
			Age:               "forty",
			YearsOfExperience: "unknown",
			CommencementDate:  "someday",
			CapabilityRatings: []RawRating{
				{QuestionCode: "A1", CurrentScore: "high"},
			},
		},
	}

	records, _ := Officers(rows)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Zero(t, rec.Age)
	assert.Zero(t, rec.YearsOfExperience)
	assert.Nil(t, rec.CommencementDate)
	assert.Zero(t, rec.CapabilityRatings[0].CurrentScore)
}

func TestParseDateLayouts(t *testing.T) {
	want := time.Date(2021, 2, 3, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"2021-02-03", "03/02/2021", "3/2/2021", "03-Feb-2021"} {
		got := parseDate(in)
		require.NotNil(t, got, "input %q", in)
		assert.Equal(t, want, *got, "input %q", in)
	}

	assert.Nil(t, parseDate(""))
	assert.Nil(t, parseDate("yesterday"))
}
