package export

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/rejoyj/Resume-Filter/internal/ranking"
)

// DefaultSheetName is used when the caller does not name the candidate set.
const DefaultSheetName = "Candidates"

const maxAnalyzedSkills = 50

// WriteExcel writes the set as a workbook: a data sheet named for the
// candidate set with the shared column layout in ranking order, plus a
// Summary sheet with field-coverage statistics and a Skills Analysis sheet
// with skill frequencies.
func WriteExcel(set *ranking.RankedResultSet, sheetName string, w io.Writer) error {
	if sheetName == "" {
		sheetName = DefaultSheetName
	}

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheetName)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	if err := writeDataSheet(f, sheetName, set, headerStyle); err != nil {
		return fmt.Errorf("failed to write data sheet: %w", err)
	}
	if err := writeSummarySheet(f, set, headerStyle); err != nil {
		return fmt.Errorf("failed to write summary sheet: %w", err)
	}
	if err := writeSkillsSheet(f, set, headerStyle); err != nil {
		return fmt.Errorf("failed to write skills sheet: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeDataSheet(f *excelize.File, sheetName string, set *ranking.RankedResultSet, headerStyle int) error {
	widths := []float64{25, 18, 30, 50, 12}
	for i, width := range widths {
		col := string(rune('A' + i))
		f.SetColWidth(sheetName, col, col, width)
	}

	for col, header := range Header {
		cell := fmt.Sprintf("%s1", string(rune('A'+col)))
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for i, sc := range set.Items() {
		row := i + 2
		for col, value := range Row(sc) {
			cell := fmt.Sprintf("%s%d", string(rune('A'+col)), row)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	if set.Len() > 0 {
		f.AutoFilter(sheetName, fmt.Sprintf("A1:E%d", set.Len()+1), []excelize.AutoFilterOptions{})
	}

	return f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

// writeSummarySheet records how many candidates carry each field, the same
// coverage statistics the screening report has always shown.
func writeSummarySheet(f *excelize.File, set *ranking.RankedResultSet, headerStyle int) error {
	const sheet = "Summary"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	f.SetColWidth(sheet, "A", "A", 30)
	f.SetColWidth(sheet, "B", "B", 12)

	items := set.Items()
	withEmail, withPhone, withSkills, withExperience := 0, 0, 0, 0
	for _, sc := range items {
		if sc.Candidate.Email != "" {
			withEmail++
		}
		if sc.Candidate.Phone != "" {
			withPhone++
		}
		if len(sc.Candidate.Skills) > 0 {
			withSkills++
		}
		if sc.Candidate.YearsExperience != nil {
			withExperience++
		}
	}

	rows := []struct {
		label string
		count int
	}{
		{"Total Candidates", len(items)},
		{"With Email", withEmail},
		{"With Phone", withPhone},
		{"With Skills", withSkills},
		{"With Experience", withExperience},
	}

	f.SetCellValue(sheet, "A1", "Statistic")
	f.SetCellValue(sheet, "B1", "Count")
	f.SetCellStyle(sheet, "A1", "B1", headerStyle)

	for i, r := range rows {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", i+2), r.label)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", i+2), r.count)
	}
	return nil
}

// writeSkillsSheet tabulates normalized skill frequency across the set,
// most common first, alphabetical within a tie so output stays stable.
func writeSkillsSheet(f *excelize.File, set *ranking.RankedResultSet, headerStyle int) error {
	const sheet = "Skills Analysis"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	f.SetColWidth(sheet, "A", "A", 25)
	f.SetColWidth(sheet, "B", "B", 12)

	counts := make(map[string]int)
	for _, sc := range set.Items() {
		for _, skill := range sc.Candidate.Skills {
			counts[strings.ToLower(strings.TrimSpace(skill))]++
		}
	}

	type freq struct {
		skill string
		count int
	}
	sorted := make([]freq, 0, len(counts))
	for skill, count := range counts {
		sorted = append(sorted, freq{skill, count})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].count != sorted[j].count {
			return sorted[i].count > sorted[j].count
		}
		return sorted[i].skill < sorted[j].skill
	})
	if len(sorted) > maxAnalyzedSkills {
		sorted = sorted[:maxAnalyzedSkills]
	}

	f.SetCellValue(sheet, "A1", "Skill")
	f.SetCellValue(sheet, "B1", "Frequency")
	f.SetCellStyle(sheet, "A1", "B1", headerStyle)

	for i, fr := range sorted {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", i+2), fr.skill)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", i+2), fr.count)
	}
	return nil
}
