package scoring

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/rejoyj/Resume-Filter/internal/models"
	"github.com/rejoyj/Resume-Filter/internal/skills"
)

// Weights controls the contribution of each score component. The components
// must sum to 1 so the composite stays in [0,1].
type Weights struct {
	Mandatory  float64 `json:"mandatory"`
	Preferred  float64 `json:"preferred"`
	Experience float64 `json:"experience"`
}

// DefaultWeights returns the standard 0.5/0.3/0.2 split.
func DefaultWeights() Weights {
	return Weights{Mandatory: 0.5, Preferred: 0.3, Experience: 0.2}
}

// Validate checks the weights are non-negative and sum to 1.
func (w Weights) Validate() error {
	if w.Mandatory < 0 || w.Preferred < 0 || w.Experience < 0 {
		return fmt.Errorf("scoring weights must be non-negative: %+v", w)
	}
	sum := w.Mandatory + w.Preferred + w.Experience
	if sum < 0.999 || sum > 1.001 {
		return fmt.Errorf("scoring weights must sum to 1, got %.3f", sum)
	}
	return nil
}

// Scorer computes deterministic match scores for candidates against a job
// description. Scoring is pure: no I/O, no randomness, no shared state.
type Scorer struct {
	weights Weights
}

// NewScorer creates a scorer with the given weights.
func NewScorer(w Weights) (*Scorer, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return &Scorer{weights: w}, nil
}

// Score evaluates one candidate against one job description. It never fails
// for well-formed inputs: a candidate with no skills and no experience
// simply scores 0.
func (s *Scorer) Score(job models.JobDescription, c models.Candidate) models.ScoredCandidate {
	mandatory := skills.NormalizeSet(job.MandatorySkills)
	preferred := skills.NormalizeSet(job.PreferredSkills)

	sc := models.ScoredCandidate{
		Candidate:        c,
		MandatoryTotal:   len(mandatory),
		PreferredTotal:   len(preferred),
		MatchedMandatory: skills.MatchCount(c.Skills, mandatory),
		MatchedPreferred: skills.MatchCount(c.Skills, preferred),
	}

	sc.ExperienceRatio = experienceRatio(c.Years(), job.RequiredYearsExperience)

	// Each fraction term is defined as 0 when its denominator is 0.
	var mandatoryTerm, preferredTerm float64
	if sc.MandatoryTotal > 0 {
		mandatoryTerm = float64(sc.MatchedMandatory) / float64(sc.MandatoryTotal)
	}
	if sc.PreferredTotal > 0 {
		preferredTerm = float64(sc.MatchedPreferred) / float64(sc.PreferredTotal)
	}

	sc.CompositeScore = s.weights.Mandatory*mandatoryTerm +
		s.weights.Preferred*preferredTerm +
		s.weights.Experience*sc.ExperienceRatio

	return sc
}

// ScoreAll scores every candidate, fanning the work out across a bounded
// worker group. Results keep the input order; scoring one candidate never
// depends on another.
func (s *Scorer) ScoreAll(ctx context.Context, job models.JobDescription, candidates []models.Candidate) ([]models.ScoredCandidate, error) {
	results := make([]models.ScoredCandidate, len(candidates))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, c := range candidates {
		g.Go(func() error {
			select {
			case <-gCtx.Done():
				return gCtx.Err()
			default:
			}
			results[i] = s.Score(job, c)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// experienceRatio clamps years/required to [0,1]. A job with no experience
// requirement has nothing to fail, so the ratio is 1.
func experienceRatio(years, required float64) float64 {
	if required <= 0 {
		return 1
	}
	ratio := years / required
	if ratio < 0 {
		return 0
	}
	if ratio > 1 {
		return 1
	}
	return ratio
}
