package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/phrazzld/lms-api/internal/domain"
	"github.com/phrazzld/lms-api/internal/generation"
	"github.com/phrazzld/lms-api/internal/generation/parse"
	"github.com/phrazzld/lms-api/internal/platform/logger"
	"github.com/phrazzld/lms-api/internal/store"
)

// DefaultExamInstructions is used when a quiz is materialized without instructions.
const DefaultExamInstructions = "AI-generated quiz. Please answer all questions."

// ExamRepository defines the persistence operations ExamService needs.
type ExamRepository interface {
	Create(ctx context.Context, exam *domain.Exam) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Exam, error)

	// WithTx returns a repository bound to tx.
	WithTx(tx *sql.Tx) ExamRepository

	// DB returns the database handle used to open transactions, or nil when
	// the repository is not transactional.
	DB() *sql.DB
}

// CreateExamInput describes a quiz to materialize. When Questions is empty
// and RawContent is set, the raw model output is parsed with QuestionType.
type CreateExamInput struct {
	CourseID         uuid.UUID
	CreatedBy        uuid.UUID
	Topic            string
	Title            string
	Instructions     string
	TimeLimitMinutes int
	QuestionType     generation.QuestionType
	RawContent       string
	Questions        []generation.ParsedQuestion
}

// ExamService turns parsed quizzes into persisted exams.
type ExamService struct {
	repo   ExamRepository
	logger *slog.Logger
}

// NewExamService creates an ExamService.
func NewExamService(repo ExamRepository, logger *slog.Logger) (*ExamService, error) {
	if repo == nil {
		return nil, &ServiceError{Service: "exam", Operation: "create_service", Message: "repo cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ExamService{
		repo:   repo,
		logger: logger.With("component", "exam_service"),
	}, nil
}

// CreateFromQuiz builds an exam from parsed quiz questions and saves it with
// its questions and choices in one transaction. Questions are numbered in
// input order; a choice is correct when its letter matches the answer.
func (s *ExamService) CreateFromQuiz(ctx context.Context, in CreateExamInput) (*domain.Exam, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	exam, err := buildExam(in)
	if err != nil {
		log.WarnContext(ctx, "invalid exam input",
			"error", err,
			"course_id", in.CourseID)
		return nil, fmt.Errorf("%w: %w", ErrInvalidExam, err)
	}

	save := func(ctx context.Context, repo ExamRepository) error {
		return repo.Create(ctx, exam)
	}

	if db := s.repo.DB(); db != nil {
		err = store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
			return save(ctx, s.repo.WithTx(tx))
		})
	} else {
		err = save(ctx, s.repo)
	}
	if err != nil {
		log.ErrorContext(ctx, "failed to save exam",
			"error", err,
			"exam_id", exam.ID)
		if errors.Is(err, store.ErrInvalidEntity) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidExam, err)
		}
		return nil, &ServiceError{Service: "exam", Operation: "create_exam", Message: "failed to save exam", Err: err}
	}

	log.InfoContext(ctx, "exam created from quiz",
		"exam_id", exam.ID,
		"course_id", exam.CourseID,
		"questions", len(exam.Questions))
	return exam, nil
}

// GetExam retrieves an exam with its questions and choices.
func (s *ExamService) GetExam(ctx context.Context, id uuid.UUID) (*domain.Exam, error) {
	exam, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrExamNotFound
		}
		return nil, &ServiceError{Service: "exam", Operation: "get_exam", Message: "failed to load exam", Err: err}
	}
	return exam, nil
}

func buildExam(in CreateExamInput) (*domain.Exam, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = truncateRunes("Quiz: "+strings.TrimSpace(in.Topic), domain.MaxExamTitleLength)
	}
	instructions := in.Instructions
	if strings.TrimSpace(instructions) == "" {
		instructions = DefaultExamInstructions
	}

	exam, err := domain.NewExam(in.CourseID, in.CreatedBy, title, instructions)
	if err != nil {
		return nil, err
	}
	exam.GeneratedContent = in.RawContent
	if in.TimeLimitMinutes > 0 {
		exam.TimeLimitMinutes = in.TimeLimitMinutes
	}

	questions := in.Questions
	if len(questions) == 0 && strings.TrimSpace(in.RawContent) != "" {
		qt := in.QuestionType
		if qt == "" {
			qt = generation.MultipleChoice
		}
		questions = parse.Questions(in.RawContent, qt).Questions
	}
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	for _, pq := range questions {
		if err := addQuestion(exam, pq); err != nil {
			return nil, err
		}
	}

	if err := exam.Validate(); err != nil {
		return nil, err
	}
	return exam, nil
}

func addQuestion(exam *domain.Exam, pq generation.ParsedQuestion) error {
	q, err := exam.AddQuestion(pq.Text, domain.QuestionType(pq.Type))
	if err != nil {
		return err
	}

	switch pq.Type {
	case generation.MultipleChoice:
		correct := ""
		if pq.CorrectAnswer != nil {
			correct = pq.CorrectAnswer.Letter
		}
		for _, c := range pq.Choices {
			// A blank option keeps its letter so the answer key still lines up.
			text := c.Text
			if strings.TrimSpace(text) == "" {
				text = c.Letter
			}
			if _, err := q.AddChoice(text, c.Letter == correct); err != nil {
				return err
			}
		}
	case generation.TrueFalse:
		if pq.CorrectAnswer == nil || !pq.CorrectAnswer.IsBool() {
			return nil
		}
		truth := *pq.CorrectAnswer.Truth
		if _, err := q.AddChoice("True", truth); err != nil {
			return err
		}
		if _, err := q.AddChoice("False", !truth); err != nil {
			return err
		}
	}
	return nil
}

func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return strings.TrimSpace(string([]rune(s)[:limit]))
}
