package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/phrazzld/lms-api/internal/api/shared"
	"github.com/phrazzld/lms-api/internal/domain"
	"github.com/phrazzld/lms-api/internal/generation"
	"github.com/phrazzld/lms-api/internal/platform/logger"
	"github.com/phrazzld/lms-api/internal/service"
)

// ExamManager is the exam surface the handlers need.
type ExamManager interface {
	CreateFromQuiz(ctx context.Context, in service.CreateExamInput) (*domain.Exam, error)
	GetExam(ctx context.Context, id uuid.UUID) (*domain.Exam, error)
}

// ExamHandler serves exam materialization endpoints.
type ExamHandler struct {
	exams ExamManager
}

// NewExamHandler creates an ExamHandler.
func NewExamHandler(exams ExamManager) *ExamHandler {
	return &ExamHandler{exams: exams}
}

// CreateExam handles POST /api/exams.
func (h *ExamHandler) CreateExam(w http.ResponseWriter, r *http.Request) {
	var req CreateExamRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	// Both IDs passed the uuid validator.
	courseID := uuid.MustParse(req.CourseID)
	createdBy := uuid.MustParse(req.CreatedBy)

	exam, err := h.exams.CreateFromQuiz(r.Context(), service.CreateExamInput{
		CourseID:         courseID,
		CreatedBy:        createdBy,
		Topic:            req.Topic,
		Title:            req.Title,
		Instructions:     req.Instructions,
		TimeLimitMinutes: req.TimeLimitMinutes,
		QuestionType:     generation.QuestionType(req.QuestionType),
		RawContent:       req.RawContent,
		Questions:        req.Questions,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	logger.FromContext(r.Context()).Info("exam materialized",
		slog.String("exam_id", exam.ID.String()),
		slog.Int("questions", len(exam.Questions)))
	shared.RespondWithJSON(w, r, http.StatusCreated, examToResponse(exam))
}

// GetExam handles GET /api/exams/{id}.
func (h *ExamHandler) GetExam(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	exam, err := h.exams.GetExam(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, examToResponse(exam))
}
