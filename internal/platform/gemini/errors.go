package gemini

import "errors"

// Error definitions for the gemini package.
var (
	// ErrEmptyPrompt is returned when Generate is called with a blank prompt.
	ErrEmptyPrompt = errors.New("prompt cannot be empty")
)
