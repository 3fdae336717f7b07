package domain

import "errors"

// Errors shared by request parsing and entity validation.
var (
	// ErrValidation is wrapped with the name of the offending field.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID reports a malformed identifier.
	ErrInvalidID = errors.New("invalid ID")
)
