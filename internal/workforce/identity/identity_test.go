package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsVacant(t *testing.T) {
	tests := []struct {
		name     string
		occupant string
		status   string
		want     bool
	}{
		{"empty occupant", "", "", true},
		{"whitespace occupant", "   ", "Active", true},
		{"literal vacant", "Vacant", "", true},
		{"lowercase vacant", "vacant", "Active", true},
		{"vacant with padding", "  VACANT  ", "", true},
		{"embedded marker", "pending *****VACANT***** review", "Active", true},
		{"status vacant", "J. Kaupa", "Vacant", true},
		{"occupied", "J. Kaupa", "Active", false},
		{"occupied no status", "J. Kaupa", "", false},
		{"status case sensitive", "J. Kaupa", "VACANT", false},
		{"name containing vacant substring", "Vacantio Kila", "Active", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsVacant(tt.occupant, tt.status))
		})
	}
}

func TestCompositeKey(t *testing.T) {
	assert.Equal(t, "j. kaupa|corporate services", CompositeKey("J. Kaupa", "Corporate Services"))
	assert.Equal(t, "j. kaupa|corporate services", CompositeKey("  j. KAUPA ", " corporate SERVICES "))
	assert.Equal(t, "|", CompositeKey("", ""))

	// Distinct divisions keep officers with the same name apart.
	assert.NotEqual(t,
		CompositeKey("J. Kaupa", "Policy"),
		CompositeKey("J. Kaupa", "Corporate Services"))
}

func TestGenderCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"M", "M"},
		{"m", "M"},
		{"Male", "M"},
		{"MALE", "M"},
		{" male ", "M"},
		{"F", "F"},
		{"Female", "F"},
		{"", ""},
		{"Unknown", ""},
		{"N/A", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GenderCode(tt.in), "input %q", tt.in)
	}
}

func TestLeadingInt(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"14", 14},
		{"14-14A", 14},
		{"Grade 9", 9},
		{"GR.12/13", 12},
		{"", 0},
		{"N/A", 0},
		{"A14", 14},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LeadingInt(tt.in), "input %q", tt.in)
	}
}
