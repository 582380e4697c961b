package errors

import "errors"

// Common application errors shared across services and repositories.
var (
	// ErrNotFound is returned when a record or resource does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrValidation is returned for malformed or out-of-range input.
	ErrValidation = errors.New("validation failed")

	// ErrConflict is returned on duplicate unique keys, e.g. a waitlist
	// email or an already-active newsletter subscription.
	ErrConflict = errors.New("resource state conflict")
)
