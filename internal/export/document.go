// Package export builds the generic report document handed to export
// collaborators. The document model stops at titled sections of plain text;
// serialization to PDF, spreadsheet, or any other format is the consumer's
// concern.
package export

import (
	"fmt"
	"sort"
	"strings"

	"cna/internal/workforce/models"
	"cna/internal/workforce/ports"
)

// Document is the export-neutral report shape.
type Document struct {
	Title    string    `json:"title"`
	Sections []Section `json:"sections"`
}

// Section is one titled block of report content.
type Section struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// BuildReport assembles the dashboard report from the computed snapshots.
// The narrative is optional; a nil narrative simply omits its section.
func BuildReport(label string, data *models.AggregatedData, grid *models.SegmentationGrid, narrative *ports.Narrative) Document {
	title := "Capability Needs Analysis Report"
	if label != "" {
		title = fmt.Sprintf("%s: %s", title, label)
	}

	doc := Document{Title: title}
	doc.Sections = append(doc.Sections,
		establishmentSection(data),
		participationSection(data),
		capabilitySection(data),
		gesiSection(data),
		divisionSection(data),
	)
	if grid != nil {
		doc.Sections = append(doc.Sections, segmentationSection(grid))
	}
	if len(data.Discrepancies) > 0 {
		doc.Sections = append(doc.Sections, discrepancySection(data))
	}
	if narrative != nil {
		doc.Sections = append(doc.Sections, narrativeSection(narrative))
	}
	return doc
}

func establishmentSection(data *models.AggregatedData) Section {
	return Section{
		Title: "Establishment Overview",
		Content: lines(
			fmt.Sprintf("Authorized positions: %d", data.TotalPositions),
			fmt.Sprintf("On strength: %d", data.OnStrength),
			fmt.Sprintf("Vacant: %d (%.1f%%)", data.VacantPositions, data.VacancyRate),
			fmt.Sprintf("Data integrity score: %.1f%%", data.DataIntegrityScore),
		),
	}
}

func participationSection(data *models.AggregatedData) Section {
	return Section{
		Title: "Survey Participation",
		Content: lines(
			fmt.Sprintf("CNA participants: %d", data.CNAParticipants),
			fmt.Sprintf("Raw responses: %d", data.TotalResponses),
			fmt.Sprintf("Participation rate: %.1f%%", data.ParticipationRate*100),
			fmt.Sprintf("Retirement risk (55+): %d", data.RetirementRiskCount),
		),
	}
}

func capabilitySection(data *models.AggregatedData) Section {
	rows := []string{
		fmt.Sprintf("Baseline capability score: %.2f", data.BaselineScore),
		fmt.Sprintf("Skill gaps: %d", data.SkillGapsCount),
		fmt.Sprintf("Qualification gaps: %d", data.QualificationGapsCount),
		fmt.Sprintf("Weakest pillar: %s (%.2f)", data.GapSector.Pillar, data.GapSector.Score),
		fmt.Sprintf("Strongest pillar: %s (%.2f)", data.PeakSector.Pillar, data.PeakSector.Score),
	}
	for _, ps := range data.PillarAverages {
		rows = append(rows, fmt.Sprintf("  %s: %.2f", ps.Pillar, ps.Score))
	}
	return Section{Title: "Capability Pillars", Content: lines(rows...)}
}

func gesiSection(data *models.AggregatedData) Section {
	return Section{
		Title: "GESI Metrics",
		Content: lines(
			fmt.Sprintf("Female seniority rate: %.1f%%", data.GESI.FemaleSeniorityRate*100),
			fmt.Sprintf("Disability/inclusion training interest: %d", data.GESI.DisabilityInclusionCount),
			fmt.Sprintf("GESI awareness score: %.2f", data.GESI.GESIAwarenessScore),
		),
	}
}

func divisionSection(data *models.AggregatedData) Section {
	divisions := make([]string, 0, len(data.DivisionStats))
	for name := range data.DivisionStats {
		divisions = append(divisions, name)
	}
	sort.Strings(divisions)

	rows := make([]string, 0, len(divisions))
	for _, name := range divisions {
		stats := data.DivisionStats[name]
		label := name
		if label == "" {
			label = "(unassigned)"
		}
		rows = append(rows, fmt.Sprintf("%s: ceiling %d, actual %d, CNA %d, skill gaps %d, qual gaps %d",
			label, stats.Ceiling, stats.Actual, stats.FilledByCNA, stats.SkillGaps, stats.QualGaps))
	}
	return Section{Title: "Divisional Rollup", Content: lines(rows...)}
}

func segmentationSection(grid *models.SegmentationGrid) Section {
	names := make([]string, 0, len(grid.Counts))
	for name := range grid.Counts {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := []string{
		fmt.Sprintf("Officers segmented: %d", grid.TotalOfficers),
		fmt.Sprintf("Core workforce: %.1f%%", grid.CorePercent),
		fmt.Sprintf("High-potential pool: %.1f%%", grid.HighPotentialPoolPercent),
		fmt.Sprintf("At risk: %.1f%%", grid.AtRiskPercent),
	}
	for _, name := range names {
		rows = append(rows, fmt.Sprintf("  %s: %d", name, grid.Counts[name]))
	}
	return Section{Title: "Talent Segmentation (9-Box)", Content: lines(rows...)}
}

func discrepancySection(data *models.AggregatedData) Section {
	rows := make([]string, 0, len(data.Discrepancies))
	for _, d := range data.Discrepancies {
		rows = append(rows, fmt.Sprintf("%s: %s (position %s): %s",
			d.Type, d.OfficerName, d.PositionNumber, d.Details))
	}
	return Section{Title: "Data Discrepancies", Content: lines(rows...)}
}

func narrativeSection(n *ports.Narrative) Section {
	rows := []string{n.Headline, "", n.Overview}
	if len(n.KeyFindings) > 0 {
		rows = append(rows, "", "Key findings:")
		for _, f := range n.KeyFindings {
			rows = append(rows, "- "+f)
		}
	}
	if len(n.Risks) > 0 {
		rows = append(rows, "", "Risks:")
		for _, r := range n.Risks {
			rows = append(rows, "- "+r)
		}
	}
	if len(n.Recommendations) > 0 {
		rows = append(rows, "", "Recommendations:")
		for _, r := range n.Recommendations {
			rows = append(rows, "- "+r)
		}
	}
	return Section{Title: "Executive Narrative", Content: lines(rows...)}
}

func lines(rows ...string) string {
	return strings.Join(rows, "\n")
}
