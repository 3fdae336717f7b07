package api

import (
	"time"

	"github.com/phrazzld/lms-api/internal/domain"
	"github.com/phrazzld/lms-api/internal/generation"
)

// GenerateLessonPlanRequest is the body of POST /api/generate/lesson-plan.
type GenerateLessonPlanRequest struct {
	Topic      string `json:"topic"      validate:"required,max=500"`
	Duration   string `json:"duration"   validate:"max=100"`
	Difficulty string `json:"difficulty" validate:"max=100"`
}

// GenerateQuizRequest is the body of POST /api/generate/quiz.
type GenerateQuizRequest struct {
	Topic        string `json:"topic"         validate:"required,max=500"`
	NumQuestions int    `json:"num_questions" validate:"omitempty,min=1,max=50"`
	QuestionType string `json:"question_type" validate:"omitempty,oneof=multiple_choice true_false short_answer"`
}

// GenerateRubricRequest is the body of POST /api/generate/rubric.
type GenerateRubricRequest struct {
	Assignment      string `json:"assignment"       validate:"required,max=2000"`
	GradingCriteria string `json:"grading_criteria" validate:"max=2000"`
}

// ExplainConceptRequest is the body of POST /api/generate/explanation.
type ExplainConceptRequest struct {
	Concept    string `json:"concept"     validate:"required,max=500"`
	GradeLevel string `json:"grade_level" validate:"max=100"`
}

// GenerateSyllabusRequest is the body of POST /api/generate/syllabus.
type GenerateSyllabusRequest struct {
	CourseTitle string `json:"course_title" validate:"required,max=200"`
	Duration    string `json:"duration"     validate:"max=100"`
	Topics      string `json:"topics"       validate:"max=2000"`
}

// ParseRequest is the body of POST /api/parse.
type ParseRequest struct {
	Content      string `json:"content"       validate:"required"`
	QuestionType string `json:"question_type" validate:"omitempty,oneof=multiple_choice true_false short_answer"`
}

// ParseResponse reports the questions recovered from raw model output.
type ParseResponse struct {
	Questions     []generation.ParsedQuestion `json:"questions"`
	Blocks        int                         `json:"blocks"`
	DroppedBlocks int                         `json:"dropped_blocks"`
}

// GenerationResponse is the wire form of a generation.Envelope. The boolean
// flags are derived from the envelope outcome and reason.
type GenerationResponse struct {
	Kind          generation.Kind             `json:"kind"`
	Outcome       generation.Outcome          `json:"outcome"`
	Content       string                      `json:"content,omitempty"`
	Questions     []generation.ParsedQuestion `json:"questions,omitempty"`
	IsDemo        bool                        `json:"is_demo"`
	QuotaExceeded bool                        `json:"quota_exceeded"`
	RateLimited   bool                        `json:"rate_limited"`
	RetryAfter    int                         `json:"retry_after,omitempty"`
	Notice        string                      `json:"notice,omitempty"`
	DroppedBlocks int                         `json:"dropped_blocks"`
	Error         string                      `json:"error,omitempty"`
}

// CreateExamRequest is the body of POST /api/exams. Either Questions or
// RawContent must be supplied.
type CreateExamRequest struct {
	CourseID         string                      `json:"course_id"          validate:"required,uuid"`
	CreatedBy        string                      `json:"created_by"         validate:"required,uuid"`
	Topic            string                      `json:"topic"              validate:"required_without=Title,max=500"`
	Title            string                      `json:"title"              validate:"max=200"`
	Instructions     string                      `json:"instructions"`
	TimeLimitMinutes int                         `json:"time_limit_minutes" validate:"omitempty,min=1,max=600"`
	QuestionType     string                      `json:"question_type"      validate:"omitempty,oneof=multiple_choice true_false short_answer"`
	RawContent       string                      `json:"raw_content"        validate:"required_without=Questions"`
	Questions        []generation.ParsedQuestion `json:"questions"          validate:"required_without=RawContent"`
}

// ExamResponse is the response body for exam endpoints.
type ExamResponse struct {
	ID               string             `json:"id"`
	CourseID         string             `json:"course_id"`
	CreatedBy        string             `json:"created_by"`
	Title            string             `json:"title"`
	Instructions     string             `json:"instructions"`
	TimeLimitMinutes int                `json:"time_limit_minutes"`
	IsPublished      bool               `json:"is_published"`
	Questions        []QuestionResponse `json:"questions"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

// QuestionResponse is one question of an ExamResponse.
type QuestionResponse struct {
	ID      string           `json:"id"`
	Text    string           `json:"text"`
	Type    string           `json:"type"`
	Points  int              `json:"points"`
	Order   int              `json:"order"`
	Choices []ChoiceResponse `json:"choices,omitempty"`
}

// ChoiceResponse is one choice of a QuestionResponse.
type ChoiceResponse struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
	Order     int    `json:"order"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status     string `json:"status"`
	Generation string `json:"generation"`
	Backend    string `json:"backend"`
}

func envelopeToResponse(env *generation.Envelope) GenerationResponse {
	resp := GenerationResponse{
		Kind:          env.Kind,
		Outcome:       env.Outcome,
		Content:       env.Content.Text,
		Questions:     env.Content.Questions,
		IsDemo:        env.IsDemo(),
		QuotaExceeded: env.QuotaExceeded(),
		RateLimited:   env.RateLimited(),
		RetryAfter:    env.RetryAfter,
		DroppedBlocks: env.DroppedBlocks,
	}
	if env.IsDemo() {
		resp.Notice = generation.DemoNotice
	}
	if env.IsFailed() {
		resp.Error = env.Message
	}
	return resp
}

func examToResponse(exam *domain.Exam) ExamResponse {
	resp := ExamResponse{
		ID:               exam.ID.String(),
		CourseID:         exam.CourseID.String(),
		CreatedBy:        exam.CreatedBy.String(),
		Title:            exam.Title,
		Instructions:     exam.Instructions,
		TimeLimitMinutes: exam.TimeLimitMinutes,
		IsPublished:      exam.IsPublished,
		Questions:        make([]QuestionResponse, 0, len(exam.Questions)),
		CreatedAt:        exam.CreatedAt,
		UpdatedAt:        exam.UpdatedAt,
	}
	for _, q := range exam.Questions {
		qr := QuestionResponse{
			ID:     q.ID.String(),
			Text:   q.Text,
			Type:   string(q.Type),
			Points: q.Points,
			Order:  q.Order,
		}
		for _, c := range q.Choices {
			qr.Choices = append(qr.Choices, ChoiceResponse{
				ID:        c.ID.String(),
				Text:      c.Text,
				IsCorrect: c.IsCorrect,
				Order:     c.Order,
			})
		}
		resp.Questions = append(resp.Questions, qr)
	}
	return resp
}
