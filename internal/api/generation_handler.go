package api

import (
	"context"
	"net/http"

	"github.com/phrazzld/lms-api/internal/api/shared"
	"github.com/phrazzld/lms-api/internal/generation"
	"github.com/phrazzld/lms-api/internal/generation/parse"
)

// ContentGenerator is the generation surface the handlers need.
type ContentGenerator interface {
	GenerateLessonPlan(ctx context.Context, topic, duration, difficulty string) (*generation.Envelope, error)
	GenerateQuiz(ctx context.Context, topic string, n int, qt generation.QuestionType) (*generation.Envelope, error)
	GenerateRubric(ctx context.Context, assignment, criteria string) (*generation.Envelope, error)
	ExplainConcept(ctx context.Context, concept, gradeLevel string) (*generation.Envelope, error)
	GenerateSyllabus(ctx context.Context, title, duration, topics string) (*generation.Envelope, error)
}

// GenerationHandler serves the content generation endpoints. Every envelope
// outcome is a 200 response; the body flags tell the outcomes apart. Only
// configuration and request errors produce error statuses.
type GenerationHandler struct {
	generator ContentGenerator
}

// NewGenerationHandler creates a GenerationHandler.
func NewGenerationHandler(generator ContentGenerator) *GenerationHandler {
	return &GenerationHandler{generator: generator}
}

// LessonPlan handles POST /api/generate/lesson-plan.
func (h *GenerationHandler) LessonPlan(w http.ResponseWriter, r *http.Request) {
	var req GenerateLessonPlanRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	env, err := h.generator.GenerateLessonPlan(r.Context(), req.Topic, req.Duration, req.Difficulty)
	h.respond(w, r, env, err)
}

// Quiz handles POST /api/generate/quiz.
func (h *GenerationHandler) Quiz(w http.ResponseWriter, r *http.Request) {
	var req GenerateQuizRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	env, err := h.generator.GenerateQuiz(r.Context(), req.Topic, req.NumQuestions, generation.QuestionType(req.QuestionType))
	h.respond(w, r, env, err)
}

// Rubric handles POST /api/generate/rubric.
func (h *GenerationHandler) Rubric(w http.ResponseWriter, r *http.Request) {
	var req GenerateRubricRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	env, err := h.generator.GenerateRubric(r.Context(), req.Assignment, req.GradingCriteria)
	h.respond(w, r, env, err)
}

// Explanation handles POST /api/generate/explanation.
func (h *GenerationHandler) Explanation(w http.ResponseWriter, r *http.Request) {
	var req ExplainConceptRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	env, err := h.generator.ExplainConcept(r.Context(), req.Concept, req.GradeLevel)
	h.respond(w, r, env, err)
}

// Syllabus handles POST /api/generate/syllabus.
func (h *GenerationHandler) Syllabus(w http.ResponseWriter, r *http.Request) {
	var req GenerateSyllabusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	env, err := h.generator.GenerateSyllabus(r.Context(), req.CourseTitle, req.Duration, req.Topics)
	h.respond(w, r, env, err)
}

// Parse handles POST /api/parse. It runs the quiz parser over caller-supplied
// text without calling the backend.
func (h *GenerationHandler) Parse(w http.ResponseWriter, r *http.Request) {
	var req ParseRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	qt := generation.QuestionType(req.QuestionType)
	if qt == "" {
		qt = generation.MultipleChoice
	}
	res := parse.Questions(req.Content, qt)
	shared.RespondWithJSON(w, r, http.StatusOK, ParseResponse{
		Questions:     res.Questions,
		Blocks:        res.Blocks,
		DroppedBlocks: res.Dropped,
	})
}

func (h *GenerationHandler) respond(w http.ResponseWriter, r *http.Request, env *generation.Envelope, err error) {
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, envelopeToResponse(env))
}
