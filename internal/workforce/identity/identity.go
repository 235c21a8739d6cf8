// Package identity holds the shared occupancy and identity predicates. The
// source spreadsheets re-implement slightly different vacancy checks per
// consumer; this package is the single source of truth and every occupancy or
// matching decision in the module goes through it.
package identity

import "strings"

// vacancyMarker is the literal flag some registers embed in the occupant cell.
const vacancyMarker = "*****VACANT*****"

// IsVacant reports whether a position is unoccupied. Checks run in precedence
// order, first match wins:
//  1. trimmed occupant is empty
//  2. trimmed lowercased occupant equals "vacant"
//  3. occupant contains the literal vacancy marker
//  4. status equals "Vacant" exactly
func IsVacant(occupant, status string) bool {
	trimmed := strings.TrimSpace(occupant)
	if trimmed == "" {
		return true
	}
	if strings.ToLower(trimmed) == "vacant" {
		return true
	}
	if strings.Contains(occupant, vacancyMarker) {
		return true
	}
	return status == "Vacant"
}

// CompositeKey builds the fallback identity key used to match survey
// submissions against register rows when no position number is shared, and to
// detect non-submitters.
func CompositeKey(name, division string) string {
	return strings.ToLower(strings.TrimSpace(name)) + "|" + strings.ToLower(strings.TrimSpace(division))
}

// GenderCode canonicalizes the inconsistent gender vocabularies of the two
// sources ("M", "Male", "F", "Female") into "M", "F", or "" for unknown.
// Comparisons between register and survey genders go through this so a
// "Female" submission matches a "F" register entry.
func GenderCode(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "m", "male":
		return "M"
	case "f", "female":
		return "F"
	default:
		return ""
	}
}

// LeadingInt extracts the first contiguous digit run from a free-text grade
// such as "14-14A". Absent or unparseable input yields 0.
func LeadingInt(s string) int {
	start := -1
	for i, r := range s {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			return parseDigits(s[start:i])
		}
	}
	if start >= 0 {
		return parseDigits(s[start:])
	}
	return 0
}

func parseDigits(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}
