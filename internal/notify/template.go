// Package notify merges message templates with candidate data and
// dispatches them to recipients, tracking a per-recipient outcome. A failure
// for one recipient never blocks or rolls back the others.
package notify

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rejoyj/Resume-Filter/internal/models"
)

// Template is a reusable message body with [Placeholder] tokens.
type Template struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Built-in templates offered by the screening workflow.
var builtinTemplates = []Template{
	{
		ID:      "positive",
		Name:    "Positive Mail",
		Subject: "Your application: next steps",
		Body:    "Hi [Name],\n\nGreat news! You've been accepted. Welcome aboard!\n\nBest,\nTeam",
	},
	{
		ID:      "negative",
		Name:    "Negative Mail",
		Subject: "Your application",
		Body:    "Hi [Name],\n\nWe regret to inform you that you were not selected.\n\nRegards,\nTeam",
	},
	{
		ID:      "info",
		Name:    "Info Mail",
		Subject: "Regarding your application",
		Body:    "Hi [Name],\n\nHere is some important information regarding your application.\n\nThanks,\nTeam",
	},
}

// Registry holds the templates available for merging.
type Registry struct {
	templates map[string]Template
}

// NewRegistry creates a registry pre-loaded with the built-in templates.
func NewRegistry() *Registry {
	r := &Registry{templates: make(map[string]Template, len(builtinTemplates))}
	for _, t := range builtinTemplates {
		r.templates[t.ID] = t
	}
	return r
}

// Register adds or replaces a template.
func (r *Registry) Register(t Template) error {
	if t.ID == "" {
		return &models.ValidationError{Field: "template_id", Message: "template id is required"}
	}
	if strings.TrimSpace(t.Body) == "" {
		return &models.ValidationError{Field: "body", Message: "template body is required"}
	}
	r.templates[t.ID] = t
	return nil
}

// Get looks a template up by ID.
func (r *Registry) Get(id string) (Template, error) {
	t, ok := r.templates[id]
	if !ok {
		return Template{}, fmt.Errorf("unknown template: %q", id)
	}
	return t, nil
}

// List returns every registered template, ordered by name.
func (r *Registry) List() []Template {
	out := make([]Template, 0, len(r.templates))
	for _, t := range r.templates {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Merge substitutes the declared placeholders with the candidate's field
// values. Placeholders with no corresponding value are left verbatim rather
// than failing the merge.
func (r *Registry) Merge(templateID string, c models.Candidate) (string, error) {
	t, err := r.Get(templateID)
	if err != nil {
		return "", err
	}
	return MergeBody(t.Body, c), nil
}

// MergeBody applies placeholder substitution to an arbitrary body.
func MergeBody(body string, c models.Candidate) string {
	pairs := []string{}
	if c.Name != "" {
		pairs = append(pairs, "[Name]", c.Name)
	}
	if c.Email != "" {
		pairs = append(pairs, "[Email]", c.Email)
	}
	if c.Phone != "" {
		pairs = append(pairs, "[Phone]", c.Phone)
	}
	if len(c.Skills) > 0 {
		pairs = append(pairs, "[Skills]", strings.Join(c.Skills, ", "))
	}
	return strings.NewReplacer(pairs...).Replace(body)
}
