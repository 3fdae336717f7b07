package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/phrazzld/lms-api/internal/events"
	"github.com/phrazzld/lms-api/internal/generation"
	"github.com/phrazzld/lms-api/internal/generation/parse"
	"github.com/phrazzld/lms-api/internal/generation/prompt"
	"github.com/phrazzld/lms-api/internal/platform/logger"
	"github.com/phrazzld/lms-api/internal/redact"
)

// DefaultGenerationTimeout bounds a backend call when no timeout is configured.
const DefaultGenerationTimeout = 30 * time.Second

// RateLimiter admits or denies generation calls per operation.
type RateLimiter interface {
	Allow(ctx context.Context, operation string) (bool, error)
	RetryAfter(ctx context.Context, operation string) time.Duration
}

// FallbackProvider produces deterministic demo content for a request.
type FallbackProvider interface {
	Content(req generation.Request) generation.Content
}

// GenerationService orchestrates one generation call end to end. It never
// returns an error for upstream failures: those become degraded or failed
// envelopes. Only configuration problems and malformed requests are errors.
type GenerationService struct {
	backend    generation.Backend
	limiter    RateLimiter
	fallback   FallbackProvider
	classifier *generation.ErrorClassifier
	emitter    events.EventEmitter
	timeout    time.Duration
	logger     *slog.Logger
}

// GenerationOption configures optional GenerationService behaviour.
type GenerationOption func(*GenerationService)

// WithTimeout sets the bound on each backend call.
func WithTimeout(d time.Duration) GenerationOption {
	return func(s *GenerationService) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithClassifier replaces the default quota classifier.
func WithClassifier(c *generation.ErrorClassifier) GenerationOption {
	return func(s *GenerationService) {
		if c != nil {
			s.classifier = c
		}
	}
}

// NewGenerationService creates a GenerationService.
// It returns an error if any of the required dependencies are nil.
func NewGenerationService(
	backend generation.Backend,
	limiter RateLimiter,
	fallback FallbackProvider,
	emitter events.EventEmitter,
	logger *slog.Logger,
	opts ...GenerationOption,
) (*GenerationService, error) {
	if backend == nil {
		return nil, &ServiceError{Service: "generation", Operation: "create_service", Message: "backend cannot be nil"}
	}
	if limiter == nil {
		return nil, &ServiceError{Service: "generation", Operation: "create_service", Message: "limiter cannot be nil"}
	}
	if fallback == nil {
		return nil, &ServiceError{Service: "generation", Operation: "create_service", Message: "fallback cannot be nil"}
	}
	if emitter == nil {
		return nil, &ServiceError{Service: "generation", Operation: "create_service", Message: "emitter cannot be nil"}
	}

	if logger == nil {
		logger = slog.Default()
	}

	s := &GenerationService{
		backend:    backend,
		limiter:    limiter,
		fallback:   fallback,
		classifier: generation.NewErrorClassifier(),
		emitter:    emitter,
		timeout:    DefaultGenerationTimeout,
		logger:     logger.With("component", "generation_service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// GenerateLessonPlan drafts a lesson plan for topic.
func (s *GenerationService) GenerateLessonPlan(
	ctx context.Context,
	topic, duration, difficulty string,
) (*generation.Envelope, error) {
	return s.Generate(ctx, generation.Request{
		Kind:       generation.KindLessonPlan,
		Topic:      topic,
		Duration:   duration,
		Difficulty: difficulty,
	})
}

// GenerateQuiz drafts quiz questions about topic. A non-positive count and an
// empty type take the request defaults.
func (s *GenerationService) GenerateQuiz(
	ctx context.Context,
	topic string,
	numQuestions int,
	questionType generation.QuestionType,
) (*generation.Envelope, error) {
	return s.Generate(ctx, generation.Request{
		Kind:         generation.KindQuiz,
		Topic:        topic,
		NumQuestions: numQuestions,
		QuestionType: questionType,
	})
}

// GenerateRubric drafts a grading rubric for an assignment.
func (s *GenerationService) GenerateRubric(
	ctx context.Context,
	assignment, criteria string,
) (*generation.Envelope, error) {
	return s.Generate(ctx, generation.Request{
		Kind:            generation.KindRubric,
		Topic:           assignment,
		GradingCriteria: criteria,
	})
}

// ExplainConcept explains concept for the given grade level.
func (s *GenerationService) ExplainConcept(
	ctx context.Context,
	concept, gradeLevel string,
) (*generation.Envelope, error) {
	return s.Generate(ctx, generation.Request{
		Kind:       generation.KindExplanation,
		Topic:      concept,
		GradeLevel: gradeLevel,
	})
}

// GenerateSyllabus drafts a course syllabus. topics is comma separated.
func (s *GenerationService) GenerateSyllabus(
	ctx context.Context,
	title, duration, topics string,
) (*generation.Envelope, error) {
	return s.Generate(ctx, generation.Request{
		Kind:       generation.KindSyllabus,
		Topic:      title,
		Duration:   duration,
		TopicsList: topics,
	})
}

// Generate runs the pipeline for req. A missing backend credential is
// returned as an error wrapping generation.ErrInvalidConfig before the rate
// limiter is consulted.
func (s *GenerationService) Generate(ctx context.Context, req generation.Request) (*generation.Envelope, error) {
	req = req.WithDefaults()
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	log := logger.FromContextOrDefault(ctx, s.logger).With(
		"kind", req.Kind,
		"backend", s.backend.Name())

	if err := s.backend.Ready(); err != nil {
		log.ErrorContext(ctx, "generation backend not configured", "error", err)
		if !errors.Is(err, generation.ErrInvalidConfig) {
			err = fmt.Errorf("%w: %w", generation.ErrInvalidConfig, err)
		}
		return nil, err
	}

	start := time.Now()
	env, quotaRule := s.run(ctx, log, req)

	event := events.NewGenerationEvent(env, s.backend.Name(), time.Since(start))
	event.QuotaRule = quotaRule
	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		log.WarnContext(ctx, "failed to emit generation event", "error", err, "event_id", event.ID)
	}

	return env, nil
}

// run produces the envelope and, for quota degradations, the name of the
// classifier rule that matched.
func (s *GenerationService) run(
	ctx context.Context,
	log *slog.Logger,
	req generation.Request,
) (*generation.Envelope, string) {
	operation := req.Kind.Operation()

	allowed, err := s.limiter.Allow(ctx, operation)
	if err != nil {
		log.ErrorContext(ctx, "rate limiter unavailable",
			"operation", operation,
			"error", redact.Error(err))
		return generation.Failed(req.Kind, "rate limiter unavailable: "+redact.Error(err)), ""
	}
	if !allowed {
		retryAfter := retryAfterSeconds(s.limiter.RetryAfter(ctx, operation))
		log.WarnContext(ctx, "rate limit exceeded, serving demo content",
			"operation", operation,
			"retry_after", retryAfter)
		return generation.Degraded(req.Kind, s.fallback.Content(req), generation.ReasonRateLimited, retryAfter), ""
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.backend.Generate(callCtx, prompt.Build(req))
	if err != nil {
		if rule, ok := s.classifier.QuotaRule(err); ok {
			retryAfter := generation.RetryAfterSeconds(err.Error())
			log.WarnContext(ctx, "generation quota exceeded, serving demo content",
				"operation", operation,
				"quota_rule", rule,
				"retry_after", retryAfter)
			return generation.Degraded(req.Kind, s.fallback.Content(req), generation.ReasonQuotaExceeded, retryAfter), rule
		}

		message := redact.Error(err)
		log.ErrorContext(ctx, "generation failed", "operation", operation, "error", message)
		return generation.Failed(req.Kind, "generation failed: "+message), ""
	}

	content, dropped := parse.Content(raw, req.Kind, req.QuestionType)
	if dropped > 0 {
		log.WarnContext(ctx, "dropped malformed question blocks",
			"dropped_blocks", dropped,
			"questions", len(content.Questions))
	}
	return generation.Success(req.Kind, content, dropped), ""
}

// retryAfterSeconds rounds a wait up to whole seconds, never below one.
func retryAfterSeconds(d time.Duration) int {
	secs := int(math.Ceil(d.Seconds()))
	if secs < 1 {
		return 1
	}
	return secs
}
