package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/phrazzld/lms-api/internal/generation"
)

// GenerationEvent records the outcome of one generation call. It is emitted
// after the envelope has been built, whatever the outcome.
type GenerationEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	Kind      generation.Kind    `json:"kind"`
	Operation string             `json:"operation"`
	Backend   string             `json:"backend"`
	Outcome   generation.Outcome `json:"outcome"`

	// Reason and RetryAfter are only set for degraded outcomes.
	Reason     generation.DegradedReason `json:"reason,omitempty"`
	RetryAfter int                       `json:"retry_after,omitempty"`

	// QuotaRule names the classifier rule that matched, if any.
	QuotaRule string `json:"quota_rule,omitempty"`

	Questions     int `json:"questions"`
	DroppedBlocks int `json:"dropped_blocks"`

	Duration  time.Duration `json:"duration"`
	CreatedAt time.Time     `json:"created_at"`
}

// NewGenerationEvent summarizes env as an event.
func NewGenerationEvent(env *generation.Envelope, backend string, duration time.Duration) *GenerationEvent {
	return &GenerationEvent{
		ID:            uuid.New(),
		Kind:          env.Kind,
		Operation:     env.Kind.Operation(),
		Backend:       backend,
		Outcome:       env.Outcome,
		Reason:        env.Reason,
		RetryAfter:    env.RetryAfter,
		Questions:     len(env.Content.Questions),
		DroppedBlocks: env.DroppedBlocks,
		Duration:      duration,
		CreatedAt:     time.Now().UTC(),
	}
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *GenerationEvent) error
}

// EventEmitter defines an interface for components that can emit events.
// This allows services to publish events without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	EmitEvent(ctx context.Context, event *GenerationEvent) error
}
