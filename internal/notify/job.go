package notify

import (
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/rejoyj/Resume-Filter/internal/models"
)

// State is the lifecycle position of a notification job:
// Draft -> Validated -> Sending -> Completed | PartiallyFailed | Failed.
type State string

const (
	StateDraft           State = "draft"
	StateValidated       State = "validated"
	StateSending         State = "sending"
	StateCompleted       State = "completed"
	StatePartiallyFailed State = "partially_failed"
	StateFailed          State = "failed"
)

// Same RFC-lite check the screening front-end has always applied.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateAddress reports whether the address passes the RFC-lite check.
func ValidateAddress(address string) bool {
	return emailPattern.MatchString(address)
}

// CanonicalAddress lower-cases and trims an address so duplicate detection
// is case-insensitive.
func CanonicalAddress(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}

// Job is one send request: a merged body bound to an ordered, duplicate-free
// recipient list. It is terminal once every recipient has resolved.
type Job struct {
	ID         string
	TemplateID string
	Subject    string
	Body       string

	recipients []string
	seen       map[string]struct{}
	state      State
}

// NewJob creates a job in Draft with no recipients.
func NewJob(templateID, subject, body string) *Job {
	return &Job{
		ID:         uuid.NewString(),
		TemplateID: templateID,
		Subject:    subject,
		Body:       body,
		seen:       make(map[string]struct{}),
		state:      StateDraft,
	}
}

// AddRecipient validates and adds an address. Adding an address already
// present (case-insensitively) is a no-op, not an error; a malformed
// address is rejected with a field-level error before any state changes.
func (j *Job) AddRecipient(address string) error {
	canonical := CanonicalAddress(address)
	if !ValidateAddress(canonical) {
		return &models.ValidationError{Field: "recipient", Message: "invalid email format: " + address}
	}
	if _, ok := j.seen[canonical]; ok {
		return nil
	}
	j.seen[canonical] = struct{}{}
	j.recipients = append(j.recipients, canonical)
	return nil
}

// Recipients returns the canonical addresses in the order they were added.
func (j *Job) Recipients() []string {
	out := make([]string, len(j.recipients))
	copy(out, j.recipients)
	return out
}

// State returns the job's current lifecycle state.
func (j *Job) State() State { return j.state }

// Validate moves a Draft job to Validated. It requires at least one
// recipient and a non-empty body; failures leave the job in Draft.
func (j *Job) Validate() error {
	if len(j.recipients) == 0 {
		return &models.ValidationError{Field: "recipients", Message: "at least one recipient is required"}
	}
	if strings.TrimSpace(j.Body) == "" {
		return &models.ValidationError{Field: "body", Message: "message body must not be empty"}
	}
	j.state = StateValidated
	return nil
}
