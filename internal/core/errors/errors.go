package errors

import "fmt"

const (
	HttpInternalError          = "internal_error"
	HttpInvalidRequestError    = "invalid_request"
	HttpValidationError        = "validation_failed"
	HttpNotFoundError          = "not_found"
	HttpInvalidRecurrenceError = "invalid_recurrence"
	HttpRepositoryError        = "repository_unavailable"
)

// ErrorResponse is the error response body for all API errors.
type ErrorResponse struct {
	ErrorType string      `json:"error_type"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}

// ValidationError reports a rejected field on a create or update request.
// Raised synchronously, before any repository call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Reason)
}

// NewValidation builds a ValidationError for one field.
func NewValidation(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// NotFoundError reports an operation against an unknown event id.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("event %q not found", e.ID)
}

// InvalidRecurrenceError reports a recurrence rule that cannot be expanded:
// a non-positive interval, an unknown frequency, or an until bound that
// precedes the base start date.
type InvalidRecurrenceError struct {
	Reason string
}

func (e *InvalidRecurrenceError) Error() string {
	return fmt.Sprintf("invalid recurrence: %s", e.Reason)
}

// RepositoryError wraps a failure from the underlying event store so callers
// can distinguish "the store broke" from "your input was wrong".
type RepositoryError struct {
	Op  string
	Err error
}

func (e *RepositoryError) Error() string {
	return fmt.Sprintf("repository %s failed: %v", e.Op, e.Err)
}

func (e *RepositoryError) Unwrap() error {
	return e.Err
}
