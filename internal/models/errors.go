package models

import "fmt"

// ParseError reports a failure to turn one uploaded document into a
// Candidate. It is surfaced per-file and never aborts a batch.
type ParseError struct {
	Filename string
	Reason   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse failed for %s: %s", e.Filename, e.Reason)
}

// ValidationError is a recoverable, field-level rejection raised before any
// state is mutated.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// TransportError wraps a network or service failure during a single
// recipient's send. It is retryable; validation failures are not.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
