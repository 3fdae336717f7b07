package generation

// Outcome is the variant tag of an Envelope.
type Outcome string

// Envelope outcomes.
const (
	// OutcomeSuccess means content came from the live backend.
	OutcomeSuccess Outcome = "success"
	// OutcomeDegraded means content came from the fallback provider.
	OutcomeDegraded Outcome = "degraded"
	// OutcomeFailed means no content could be produced.
	OutcomeFailed Outcome = "failed"
)

// DegradedReason explains why fallback content was served.
type DegradedReason string

// Degradation reasons.
const (
	ReasonRateLimited   DegradedReason = "rate_limited"
	ReasonQuotaExceeded DegradedReason = "quota_exceeded"
)

// DemoNotice is the advisory attached to degraded envelopes.
const DemoNotice = "This is demo content. AI generation is temporarily unavailable; try again later for AI-generated content."

// Envelope is the uniform result of a generation call. Exactly one variant is
// populated, selected by Outcome:
//
//   - success: Content (and DroppedBlocks for quizzes)
//   - degraded: Content, Reason, RetryAfter
//   - failed: Message
//
// Use the constructors below rather than building an Envelope by hand.
type Envelope struct {
	Kind    Kind
	Outcome Outcome
	Content Content

	// DroppedBlocks counts quiz blocks that failed structural validation.
	DroppedBlocks int

	Reason DegradedReason
	// RetryAfter is a hint in seconds; only set on degraded envelopes.
	RetryAfter int

	Message string
}

// Success builds a success envelope.
func Success(kind Kind, content Content, dropped int) *Envelope {
	return &Envelope{
		Kind:          kind,
		Outcome:       OutcomeSuccess,
		Content:       content,
		DroppedBlocks: dropped,
	}
}

// Degraded builds an envelope carrying fallback content.
func Degraded(kind Kind, content Content, reason DegradedReason, retryAfter int) *Envelope {
	return &Envelope{
		Kind:       kind,
		Outcome:    OutcomeDegraded,
		Content:    content,
		Reason:     reason,
		RetryAfter: retryAfter,
	}
}

// Failed builds an envelope for an unclassified generation failure.
func Failed(kind Kind, message string) *Envelope {
	return &Envelope{
		Kind:    kind,
		Outcome: OutcomeFailed,
		Message: message,
	}
}

// IsDemo reports whether the content originated from the fallback provider.
func (e *Envelope) IsDemo() bool {
	return e.Outcome == OutcomeDegraded
}

// QuotaExceeded reports whether the upstream quota was exhausted.
func (e *Envelope) QuotaExceeded() bool {
	return e.Outcome == OutcomeDegraded && e.Reason == ReasonQuotaExceeded
}

// RateLimited reports whether the local rate limiter denied the call.
func (e *Envelope) RateLimited() bool {
	return e.Outcome == OutcomeDegraded && e.Reason == ReasonRateLimited
}

// IsFailed reports whether no content could be produced.
func (e *Envelope) IsFailed() bool {
	return e.Outcome == OutcomeFailed
}
