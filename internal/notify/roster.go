package notify

import (
	"github.com/rejoyj/Resume-Filter/internal/models"
)

// wrapTransport marks an error as a retryable transport failure.
func wrapTransport(err error) error {
	return &models.TransportError{Err: err}
}

// BroadcastRequest is a select-subset send over a pre-populated roster: the
// caller picks recipients from the candidate set and supplies a free-form
// message.
type BroadcastRequest struct {
	Message   string   `json:"message"`
	Selected  []string `json:"selected"`
	SelectAll bool     `json:"select_all"`
}

// BuildBroadcastJob turns a broadcast request against a roster into a
// notification job. The message must be non-empty and at least one roster
// entry must be selected; selections not present on the roster are rejected
// rather than silently sent to.
func BuildBroadcastJob(roster []models.RosterEntry, req BroadcastRequest) (*Job, error) {
	if req.Message == "" {
		return nil, &models.ValidationError{Field: "message", Message: "please write a message"}
	}

	onRoster := make(map[string]struct{}, len(roster))
	for _, entry := range roster {
		onRoster[CanonicalAddress(entry.Email)] = struct{}{}
	}

	selected := req.Selected
	if req.SelectAll {
		selected = make([]string, 0, len(roster))
		for _, entry := range roster {
			selected = append(selected, entry.Email)
		}
	}
	if len(selected) == 0 {
		return nil, &models.ValidationError{Field: "selected", Message: "please select at least one recipient"}
	}

	job := NewJob("broadcast", "Broadcast message", req.Message)
	for _, address := range selected {
		if _, ok := onRoster[CanonicalAddress(address)]; !ok {
			return nil, &models.ValidationError{Field: "selected", Message: "recipient is not on the roster: " + address}
		}
		if err := job.AddRecipient(address); err != nil {
			return nil, err
		}
	}
	return job, nil
}
