package generation

import "context"

// Backend defines the interface for the external generative service.
// This interface serves as a boundary between the application core and
// external AI/LLM services, following the hexagonal architecture pattern.
//
// The wire contract is one textual prompt in, one textual
// response out. Backends must not assume the model obeys the requested format.
type Backend interface {
	// Name identifies the backend in logs and events (e.g. "gemini").
	Name() string

	// Ready reports configuration problems, such as a missing API credential.
	// It must not perform network calls. A non-nil result wraps ErrInvalidConfig.
	Ready() error

	// Generate sends the prompt to the model and returns its raw text response.
	Generate(ctx context.Context, prompt string) (string, error)
}
