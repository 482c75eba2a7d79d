package scoring

import (
	"context"
	"math"
	"reflect"
	"testing"

	"github.com/rejoyj/Resume-Filter/internal/models"
)

func years(v float64) *float64 { return &v }

func mustScorer(t *testing.T, w Weights) *Scorer {
	t.Helper()
	s, err := NewScorer(w)
	if err != nil {
		t.Fatalf("NewScorer() failed: %v", err)
	}
	return s
}

func TestWeights_Validate(t *testing.T) {
	tests := []struct {
		name    string
		weights Weights
		wantErr bool
	}{
		{
			name:    "Default weights",
			weights: DefaultWeights(),
			wantErr: false,
		},
		{
			name:    "Custom weights summing to one",
			weights: Weights{Mandatory: 0.6, Preferred: 0.2, Experience: 0.2},
			wantErr: false,
		},
		{
			name:    "Sum above one",
			weights: Weights{Mandatory: 0.8, Preferred: 0.3, Experience: 0.2},
			wantErr: true,
		},
		{
			name:    "Negative component",
			weights: Weights{Mandatory: 1.2, Preferred: -0.2, Experience: 0},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.weights.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestScore_CompositeBreakdown works one full score by hand: mandatory
// {S1,S2,S3}, candidate {S1,S2,S4}, 3 of 4 required years, no preferred
// skills.
func TestScore_CompositeBreakdown(t *testing.T) {
	s := mustScorer(t, DefaultWeights())

	job := models.JobDescription{
		Title:                   "Frontend Engineer",
		RequiredYearsExperience: 4,
		MandatorySkills:         []string{"S1", "S2", "S3"},
	}
	c := models.Candidate{
		Name:            "Priya Desai",
		Skills:          []string{"S1", "S2", "S4"},
		YearsExperience: years(3),
	}

	got := s.Score(job, c)

	if got.MatchedMandatory != 2 || got.MandatoryTotal != 3 {
		t.Errorf("mandatory = %d/%d, want 2/3", got.MatchedMandatory, got.MandatoryTotal)
	}
	if got.ExperienceRatio != 0.75 {
		t.Errorf("ExperienceRatio = %v, want 0.75", got.ExperienceRatio)
	}
	want := 0.5*(2.0/3.0) + 0.2*0.75
	if math.Abs(got.CompositeScore-want) > 1e-9 {
		t.Errorf("CompositeScore = %v, want %v", got.CompositeScore, want)
	}
}

func TestScore_EdgeCases(t *testing.T) {
	s := mustScorer(t, DefaultWeights())

	tests := []struct {
		name      string
		job       models.JobDescription
		candidate models.Candidate
		check     func(t *testing.T, sc models.ScoredCandidate)
	}{
		{
			name: "No mandatory skills contributes zero, not an error",
			job: models.JobDescription{
				RequiredYearsExperience: 2,
				PreferredSkills:         []string{"Go"},
			},
			candidate: models.Candidate{Skills: []string{"Go"}, YearsExperience: years(2)},
			check: func(t *testing.T, sc models.ScoredCandidate) {
				if sc.MandatoryTotal != 0 || sc.MatchedMandatory != 0 {
					t.Errorf("mandatory = %d/%d, want 0/0", sc.MatchedMandatory, sc.MandatoryTotal)
				}
				want := 0.3*1 + 0.2*1
				if math.Abs(sc.CompositeScore-want) > 1e-9 {
					t.Errorf("CompositeScore = %v, want %v", sc.CompositeScore, want)
				}
			},
		},
		{
			name: "Zero required years means ratio one",
			job:  models.JobDescription{MandatorySkills: []string{"Go"}},
			candidate: models.Candidate{
				Skills: []string{"Go"},
			},
			check: func(t *testing.T, sc models.ScoredCandidate) {
				if sc.ExperienceRatio != 1 {
					t.Errorf("ExperienceRatio = %v, want 1", sc.ExperienceRatio)
				}
			},
		},
		{
			name: "Absent experience treated as zero",
			job: models.JobDescription{
				RequiredYearsExperience: 4,
				MandatorySkills:         []string{"Go"},
			},
			candidate: models.Candidate{Skills: []string{"Go"}},
			check: func(t *testing.T, sc models.ScoredCandidate) {
				if sc.ExperienceRatio != 0 {
					t.Errorf("ExperienceRatio = %v, want 0", sc.ExperienceRatio)
				}
			},
		},
		{
			name: "Experience above requirement clamps to one",
			job: models.JobDescription{
				RequiredYearsExperience: 4,
			},
			candidate: models.Candidate{YearsExperience: years(9)},
			check: func(t *testing.T, sc models.ScoredCandidate) {
				if sc.ExperienceRatio != 1 {
					t.Errorf("ExperienceRatio = %v, want 1", sc.ExperienceRatio)
				}
			},
		},
		{
			name: "Empty candidate scores zero",
			job: models.JobDescription{
				RequiredYearsExperience: 4,
				MandatorySkills:         []string{"Jest", "React"},
				PreferredSkills:         []string{"Redux"},
			},
			candidate: models.Candidate{Name: "Amirthavarshini L"},
			check: func(t *testing.T, sc models.ScoredCandidate) {
				if sc.CompositeScore != 0 {
					t.Errorf("CompositeScore = %v, want 0", sc.CompositeScore)
				}
			},
		},
		{
			name: "Duplicate job skills counted once",
			job: models.JobDescription{
				MandatorySkills: []string{"Go", "go", " GO "},
			},
			candidate: models.Candidate{Skills: []string{"Go"}},
			check: func(t *testing.T, sc models.ScoredCandidate) {
				if sc.MandatoryTotal != 1 || sc.MatchedMandatory != 1 {
					t.Errorf("mandatory = %d/%d, want 1/1", sc.MatchedMandatory, sc.MandatoryTotal)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := s.Score(tt.job, tt.candidate)
			if sc.CompositeScore < 0 || sc.CompositeScore > 1 {
				t.Errorf("CompositeScore %v outside [0,1]", sc.CompositeScore)
			}
			tt.check(t, sc)
		})
	}
}

func TestScore_Deterministic(t *testing.T) {
	s := mustScorer(t, DefaultWeights())

	job := models.JobDescription{
		RequiredYearsExperience: 4,
		MandatorySkills:         []string{"Jest", "React", "Aria"},
		PreferredSkills:         []string{"Agile", "Apis"},
	}
	c := models.Candidate{
		Name:            "Marco Silva",
		Skills:          []string{"Jest", "React", "Agile"},
		YearsExperience: years(9),
	}

	first := s.Score(job, c)
	for i := 0; i < 10; i++ {
		if got := s.Score(job, c); !reflect.DeepEqual(got, first) {
			t.Fatalf("Score() not deterministic: %+v vs %+v", got, first)
		}
	}
}

func TestScoreAll_PreservesInputOrder(t *testing.T) {
	s := mustScorer(t, DefaultWeights())

	job := models.JobDescription{MandatorySkills: []string{"Go"}}
	candidates := make([]models.Candidate, 40)
	for i := range candidates {
		candidates[i] = models.Candidate{Name: string(rune('A' + i%26))}
	}

	results, err := s.ScoreAll(context.Background(), job, candidates)
	if err != nil {
		t.Fatalf("ScoreAll() failed: %v", err)
	}
	if len(results) != len(candidates) {
		t.Fatalf("got %d results, want %d", len(results), len(candidates))
	}
	for i := range results {
		if results[i].Candidate.Name != candidates[i].Name {
			t.Errorf("result %d is %q, want %q", i, results[i].Candidate.Name, candidates[i].Name)
		}
	}
}

func TestScoreAll_CancelledContext(t *testing.T) {
	s := mustScorer(t, DefaultWeights())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.ScoreAll(ctx, models.JobDescription{}, make([]models.Candidate, 100))
	if err == nil {
		t.Error("ScoreAll() with cancelled context should fail")
	}
}
