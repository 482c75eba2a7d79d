// Package ranking maintains the canonical ordering of scored candidates and
// serves bounded pages from it. A RankedResultSet is an immutable snapshot:
// filtering returns a new set, so an in-flight page request can never observe
// a half-applied filter.
package ranking

import (
	"sort"
	"strings"

	"github.com/rejoyj/Resume-Filter/internal/models"
	"github.com/rejoyj/Resume-Filter/internal/skills"
)

// DefaultPageSize matches the result table of the original screening UI.
const DefaultPageSize = 10

// RankedResultSet is the ordered, filterable view of scored candidates for
// one screening session.
type RankedResultSet struct {
	items    []models.ScoredCandidate
	unfilter *RankedResultSet // nil when this set is itself unfiltered
	query    string
}

// Build sorts the scored candidates into the canonical order: composite
// score descending, ties broken by name ascending (case-insensitive),
// otherwise stable. The input slice is not modified.
func Build(scored []models.ScoredCandidate) *RankedResultSet {
	items := make([]models.ScoredCandidate, len(scored))
	copy(items, scored)

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].CompositeScore != items[j].CompositeScore {
			return items[i].CompositeScore > items[j].CompositeScore
		}
		return strings.ToLower(items[i].Candidate.Name) < strings.ToLower(items[j].Candidate.Name)
	})

	return &RankedResultSet{items: items}
}

// Filter returns a new set containing only entries whose name or skill
// tokens contain the query as a case-insensitive substring. Order is
// preserved; filtering never re-sorts. An empty query returns the full
// unfiltered set.
func (s *RankedResultSet) Filter(query string) *RankedResultSet {
	base := s.Unfiltered()
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return base
	}

	matched := make([]models.ScoredCandidate, 0, len(base.items))
	for _, sc := range base.items {
		if matches(sc, q) {
			matched = append(matched, sc)
		}
	}
	return &RankedResultSet{items: matched, unfilter: base, query: query}
}

// Unfiltered returns the full originally-ranked set this one was filtered
// from, in its original order.
func (s *RankedResultSet) Unfiltered() *RankedResultSet {
	if s.unfilter != nil {
		return s.unfilter
	}
	return s
}

// Query returns the active filter query, empty when unfiltered.
func (s *RankedResultSet) Query() string { return s.query }

// Len returns the number of entries in this set.
func (s *RankedResultSet) Len() int { return len(s.items) }

// Items returns the entries in ranking order. Callers must not modify the
// returned slice.
func (s *RankedResultSet) Items() []models.ScoredCandidate { return s.items }

// Page serves one bounded window. Page numbers are 1-based; out-of-range
// requests are clamped into [1, totalPages] rather than failing. An empty
// set has totalPages 0 and every page of it is empty.
func (s *RankedResultSet) Page(page, pageSize int) models.ResultsPage {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	total := len(s.items)
	totalPages := (total + pageSize - 1) / pageSize

	if totalPages == 0 {
		return models.ResultsPage{
			Items:      []models.ScoredCandidate{},
			Page:       1,
			PageSize:   pageSize,
			TotalPages: 0,
		}
	}

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if end > total {
		end = total
	}

	return models.ResultsPage{
		Items:      s.items[start:end],
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		TotalItems: total,
	}
}

func matches(sc models.ScoredCandidate, q string) bool {
	if strings.Contains(strings.ToLower(sc.Candidate.Name), q) {
		return true
	}
	for _, skill := range sc.Candidate.Skills {
		if strings.Contains(skills.Normalize(skill), q) {
			return true
		}
	}
	return false
}
