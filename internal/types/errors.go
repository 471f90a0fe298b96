package types

import "errors"

var (
	// ErrNotFound reports a dangling or unknown identifier (post id, group
	// slug, username).
	ErrNotFound = errors.New("not found")

	// ErrForbidden reports an ownership mismatch. Controllers map it to a
	// redirect back to the resource, not an error page.
	ErrForbidden = errors.New("forbidden")

	// ErrConflict reports a uniqueness violation (taken username, duplicate
	// group slug).
	ErrConflict = errors.New("already exists")
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
