// Package export serializes a ranked candidate set into structured files.
// Both formats share one logical layout: Name, Phone, Email, Skills (joined
// with ", "), Experience, in ranking order. Exporting the same set twice
// yields byte-identical output.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rejoyj/Resume-Filter/internal/models"
	"github.com/rejoyj/Resume-Filter/internal/ranking"
)

// Format selects the export artifact type.
type Format string

const (
	FormatCSV   Format = "csv"
	FormatExcel Format = "xlsx"
)

// SkillSeparator joins a candidate's skill list into one cell. Splitting on
// it reconstructs the original ordered list.
const SkillSeparator = ", "

// Header is the fixed column order shared by every export format.
var Header = []string{"Name", "Phone", "Email", "Skills", "Experience"}

// Export writes the ranked set to w in the requested format. sheetName only
// applies to the spreadsheet format.
func Export(set *ranking.RankedResultSet, format Format, sheetName string, w io.Writer) error {
	switch format {
	case FormatCSV:
		return WriteCSV(set, w)
	case FormatExcel:
		return WriteExcel(set, sheetName, w)
	default:
		return fmt.Errorf("unsupported export format: %q", format)
	}
}

// WriteCSV writes the set as UTF-8 RFC-4180 CSV with a header row. Fields
// containing the delimiter, quotes, or newlines are quoted with internal
// quotes doubled, which matters for the joined skill list.
func WriteCSV(set *ranking.RankedResultSet, w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, sc := range set.Items() {
		if err := cw.Write(Row(sc)); err != nil {
			return fmt.Errorf("failed to write CSV row for %s: %w", sc.Candidate.Name, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// Row renders one scored candidate into the shared column layout.
func Row(sc models.ScoredCandidate) []string {
	return []string{
		sc.Candidate.Name,
		sc.Candidate.Phone,
		sc.Candidate.Email,
		strings.Join(sc.Candidate.Skills, SkillSeparator),
		FormatExperience(sc.Candidate),
	}
}

// FormatExperience renders the candidate's years of experience, empty when
// the parser found none.
func FormatExperience(c models.Candidate) string {
	if c.YearsExperience == nil {
		return ""
	}
	return strconv.FormatFloat(*c.YearsExperience, 'f', -1, 64)
}
