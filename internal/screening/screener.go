// Package screening orchestrates one screening session: a job description,
// the candidates parsed for it, and the ranked view served to callers.
package screening

import (
	"context"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"

	"github.com/rejoyj/Resume-Filter/internal/export"
	"github.com/rejoyj/Resume-Filter/internal/models"
	"github.com/rejoyj/Resume-Filter/internal/ranking"
	"github.com/rejoyj/Resume-Filter/internal/repository"
	"github.com/rejoyj/Resume-Filter/internal/scoring"
)

// Screener coordinates scoring, ranking and export for the active session.
// The current RankedResultSet is an immutable snapshot swapped under the
// write lock; readers page against whatever snapshot they observe.
type Screener struct {
	scorer *scoring.Scorer
	repo   repository.JobRepository
	log    *zap.Logger

	mu         sync.RWMutex
	job        models.JobDescription
	jobSet     bool
	candidates []models.Candidate
	current    *ranking.RankedResultSet
}

// NewScreener creates a screener. A nil logger disables logging.
func NewScreener(scorer *scoring.Scorer, repo repository.JobRepository, log *zap.Logger) *Screener {
	if log == nil {
		log = zap.NewNop()
	}
	return &Screener{
		scorer: scorer,
		repo:   repo,
		log:    log,
	}
}

// SetJob stores the job description for the session and persists it. Results
// from a previous job are discarded; candidates are kept so the same uploads
// can be screened against the new description.
func (s *Screener) SetJob(job models.JobDescription) (string, error) {
	id, err := s.repo.Save(job)
	if err != nil {
		return "", err
	}
	job.ID = id

	s.mu.Lock()
	s.job = job
	s.jobSet = true
	s.current = nil
	s.mu.Unlock()

	s.log.Info("job description set",
		zap.String("job_id", id),
		zap.String("title", job.Title))
	return id, nil
}

// Job returns the active job description.
func (s *Screener) Job() (models.JobDescription, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.job, s.jobSet
}

// AddCandidates appends parsed candidates to the session. The ranked view is
// stale until the next Screen call.
func (s *Screener) AddCandidates(candidates []models.Candidate) {
	if len(candidates) == 0 {
		return
	}

	s.mu.Lock()
	s.candidates = append(s.candidates, candidates...)
	total := len(s.candidates)
	s.mu.Unlock()

	s.log.Info("candidates added",
		zap.Int("added", len(candidates)),
		zap.Int("total", total))
}

// Candidates returns a copy of the session's candidate list.
func (s *Screener) Candidates() []models.Candidate {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Candidate, len(s.candidates))
	copy(out, s.candidates)
	return out
}

// Screen scores every candidate against the active job and swaps in a fresh
// ranked snapshot. Any active search is cleared; the new ranking reflects the
// whole candidate set.
func (s *Screener) Screen(ctx context.Context) error {
	s.mu.RLock()
	job, jobSet := s.job, s.jobSet
	candidates := make([]models.Candidate, len(s.candidates))
	copy(candidates, s.candidates)
	s.mu.RUnlock()

	if !jobSet {
		return fmt.Errorf("no job description set, submit one first")
	}

	scored, err := s.scorer.ScoreAll(ctx, job, candidates)
	if err != nil {
		return fmt.Errorf("scoring failed: %w", err)
	}

	set := ranking.Build(scored)

	s.mu.Lock()
	s.current = set
	s.mu.Unlock()

	s.log.Info("screening complete",
		zap.String("job_id", job.ID),
		zap.Int("candidates", set.Len()))
	return nil
}

// Search narrows the ranked view to entries matching query. Each call filters
// the full set, never the previous filter, so refining a search behaves like
// typing in a search box.
func (s *Screener) Search(query string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return fmt.Errorf("no results available, run screening first")
	}
	s.current = s.current.Filter(query)
	return nil
}

// ClearSearch restores the full ranked view in its original order.
func (s *Screener) ClearSearch() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil {
		s.current = s.current.Unfiltered()
	}
}

// Results serves one page of the current ranked view.
func (s *Screener) Results(page, pageSize int) (models.ResultsPage, error) {
	set, err := s.snapshot()
	if err != nil {
		return models.ResultsPage{}, err
	}
	return set.Page(page, pageSize), nil
}

// ExportCSV writes the current ranked view as CSV.
func (s *Screener) ExportCSV(w io.Writer) error {
	set, err := s.snapshot()
	if err != nil {
		return err
	}
	return export.WriteCSV(set, w)
}

// ExportExcel writes the current ranked view as a spreadsheet.
func (s *Screener) ExportExcel(sheetName string, w io.Writer) error {
	set, err := s.snapshot()
	if err != nil {
		return err
	}
	return export.WriteExcel(set, sheetName, w)
}

// Roster lists candidates with an email address as notification recipients,
// in the current ranking order.
func (s *Screener) Roster() ([]models.RosterEntry, error) {
	set, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	roster := make([]models.RosterEntry, 0, set.Len())
	for _, sc := range set.Items() {
		if sc.Candidate.Email == "" {
			continue
		}
		roster = append(roster, models.RosterEntry{
			Name:  sc.Candidate.Name,
			Email: sc.Candidate.Email,
		})
	}
	return roster, nil
}

func (s *Screener) snapshot() (*ranking.RankedResultSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil, fmt.Errorf("no results available, run screening first")
	}
	return s.current, nil
}
