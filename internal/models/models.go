package models

// JobDescription represents a job posting with its screening requirements
type JobDescription struct {
	ID                      string   `json:"id,omitempty"`
	Title                   string   `json:"title"`
	RequiredYearsExperience float64  `json:"required_years_experience"`
	MandatorySkills         []string `json:"mandatory_skills"`
	PreferredSkills         []string `json:"preferred_skills"`
	Description             string   `json:"description"`
}

// Candidate is one structured record produced by the external resume parser.
// YearsExperience is a pointer because the parser may not find a figure at
// all; absent is not the same as zero for reporting, even though scoring
// treats both as zero.
type Candidate struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	Skills          []string `json:"skills"`
	YearsExperience *float64 `json:"years_experience,omitempty"`
	SourceDocument  string   `json:"source_document,omitempty"`
}

// Years returns the candidate's experience, or 0 when the parser found none.
func (c Candidate) Years() float64 {
	if c.YearsExperience == nil {
		return 0
	}
	return *c.YearsExperience
}

// ScoredCandidate is the derived match result for one candidate against one
// job description. It is a pure function of the two inputs and is never
// mutated in place; rescoring produces a fresh value.
type ScoredCandidate struct {
	Candidate        Candidate `json:"candidate"`
	MatchedMandatory int       `json:"matched_mandatory"`
	MandatoryTotal   int       `json:"mandatory_total"`
	MatchedPreferred int       `json:"matched_preferred"`
	PreferredTotal   int       `json:"preferred_total"`
	ExperienceRatio  float64   `json:"experience_ratio"`
	CompositeScore   float64   `json:"composite_score"`
}

// FileOutcome reports the result of parsing one uploaded document in a batch.
// A failed file never aborts the rest of the batch.
type FileOutcome struct {
	Filename string `json:"filename"`
	Status   string `json:"status"` // "success" or "error"
	Message  string `json:"message,omitempty"`
}

// ResultsPage is one bounded window of the ranked result set.
type ResultsPage struct {
	Items      []ScoredCandidate `json:"items"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
	TotalItems int               `json:"total_items"`
}

// RosterEntry is one selectable notification recipient derived from the
// candidate set.
type RosterEntry struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
