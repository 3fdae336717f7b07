package generation

import "errors"

// Common errors returned by the generation package
var (
	// ErrInvalidConfig is returned when the backend is missing required configuration,
	// such as an API credential. It is never recovered by falling back to demo content.
	ErrInvalidConfig = errors.New("invalid generator configuration")

	// ErrQuotaExceeded may be wrapped by backends that can positively identify a
	// quota or rate-limit response from the upstream service.
	ErrQuotaExceeded = errors.New("language model quota exceeded")

	// ErrInvalidResponse is returned when the LLM response is empty or malformed
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrContentBlocked is returned when the LLM blocks the content due to safety filters
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrUnsupportedKind is returned for a content kind the pipeline does not know
	ErrUnsupportedKind = errors.New("unsupported content kind")
)
