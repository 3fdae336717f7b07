package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/lms-api/internal/domain"
	"github.com/phrazzld/lms-api/internal/platform/logger"
	"github.com/phrazzld/lms-api/internal/store"
)

// PostgresExamStore implements store.ExamStore using PostgreSQL.
type PostgresExamStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresExamStore creates a new PostgreSQL implementation of the ExamStore interface.
// It accepts a database connection or transaction managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresExamStore(db store.DBTX, logger *slog.Logger) *PostgresExamStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresExamStore{
		db:     db,
		logger: logger.With(slog.String("component", "exam_store")),
	}
}

var _ store.ExamStore = (*PostgresExamStore)(nil)

// WithTx implements store.ExamStore.WithTx.
func (s *PostgresExamStore) WithTx(tx *sql.Tx) store.ExamStore {
	return &PostgresExamStore{
		db:     tx,
		logger: s.logger,
	}
}

const (
	insertExamQuery = `
		INSERT INTO exams (id, course_id, created_by, title, instructions, generated_content,
			time_limit_minutes, is_published, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	insertQuestionQuery = `
		INSERT INTO exam_questions (id, exam_id, text, question_type, points, position)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	insertChoiceQuery = `
		INSERT INTO exam_choices (id, question_id, text, is_correct, position)
		VALUES ($1, $2, $3, $4, $5)
	`
	selectExamQuery = `
		SELECT id, course_id, created_by, title, instructions, generated_content,
			time_limit_minutes, is_published, created_at, updated_at
		FROM exams
		WHERE id = $1
	`
	selectQuestionsQuery = `
		SELECT id, exam_id, text, question_type, points, position
		FROM exam_questions
		WHERE exam_id = $1
		ORDER BY position
	`
	selectChoicesQuery = `
		SELECT c.id, c.question_id, c.text, c.is_correct, c.position
		FROM exam_choices c
		JOIN exam_questions q ON q.id = c.question_id
		WHERE q.exam_id = $1
		ORDER BY q.position, c.position
	`
)

// Create implements store.ExamStore.Create. When the store is bound to a
// *sql.DB the exam, its questions and its choices are written in one
// transaction; when bound to a transaction the caller owns commit and rollback.
func (s *PostgresExamStore) Create(ctx context.Context, exam *domain.Exam) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := exam.Validate(); err != nil {
		log.Warn("exam validation failed during create",
			slog.String("error", err.Error()),
			slog.String("exam_id", exam.ID.String()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	var err error
	if db, ok := s.db.(*sql.DB); ok {
		err = store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
			return insertExam(ctx, tx, exam)
		})
	} else {
		err = insertExam(ctx, s.db, exam)
	}
	if err != nil {
		log.Error("failed to create exam",
			slog.String("error", err.Error()),
			slog.String("exam_id", exam.ID.String()))
		return err
	}

	log.Info("exam created",
		slog.String("exam_id", exam.ID.String()),
		slog.Int("questions", len(exam.Questions)))
	return nil
}

func insertExam(ctx context.Context, db store.DBTX, exam *domain.Exam) error {
	_, err := db.ExecContext(ctx, insertExamQuery,
		exam.ID,
		exam.CourseID,
		exam.CreatedBy,
		exam.Title,
		exam.Instructions,
		exam.GeneratedContent,
		exam.TimeLimitMinutes,
		exam.IsPublished,
		exam.CreatedAt,
		exam.UpdatedAt,
	)
	if err != nil {
		return store.NewStoreError("exam", "create", "insert failed", MapError(err))
	}

	for _, q := range exam.Questions {
		_, err := db.ExecContext(ctx, insertQuestionQuery,
			q.ID, exam.ID, q.Text, string(q.Type), q.Points, q.Order)
		if err != nil {
			return store.NewStoreError("question", "create", "insert failed", MapError(err))
		}

		for _, c := range q.Choices {
			_, err := db.ExecContext(ctx, insertChoiceQuery,
				c.ID, q.ID, c.Text, c.IsCorrect, c.Order)
			if err != nil {
				return store.NewStoreError("choice", "create", "insert failed", MapError(err))
			}
		}
	}
	return nil
}

// GetByID implements store.ExamStore.GetByID.
func (s *PostgresExamStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Exam, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving exam by ID", slog.String("exam_id", id.String()))

	var exam domain.Exam
	err := s.db.QueryRowContext(ctx, selectExamQuery, id).Scan(
		&exam.ID,
		&exam.CourseID,
		&exam.CreatedBy,
		&exam.Title,
		&exam.Instructions,
		&exam.GeneratedContent,
		&exam.TimeLimitMinutes,
		&exam.IsPublished,
		&exam.CreatedAt,
		&exam.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("exam not found", slog.String("exam_id", id.String()))
			return nil, store.ErrExamNotFound
		}
		log.Error("failed to get exam by ID",
			slog.String("error", err.Error()),
			slog.String("exam_id", id.String()))
		return nil, store.NewStoreError("exam", "get", "select failed", err)
	}

	questions, byID, err := s.loadQuestions(ctx, id)
	if err != nil {
		return nil, err
	}
	exam.Questions = questions

	if err := s.loadChoices(ctx, id, byID); err != nil {
		return nil, err
	}

	return &exam, nil
}

func (s *PostgresExamStore) loadQuestions(
	ctx context.Context,
	examID uuid.UUID,
) ([]*domain.Question, map[uuid.UUID]*domain.Question, error) {
	rows, err := s.db.QueryContext(ctx, selectQuestionsQuery, examID)
	if err != nil {
		return nil, nil, store.NewStoreError("question", "list", "select failed", err)
	}
	defer func() { _ = rows.Close() }()

	questions := []*domain.Question{}
	byID := make(map[uuid.UUID]*domain.Question)
	for rows.Next() {
		var q domain.Question
		var qt string
		if err := rows.Scan(&q.ID, &q.ExamID, &q.Text, &qt, &q.Points, &q.Order); err != nil {
			return nil, nil, store.NewStoreError("question", "list", "scan failed", err)
		}
		q.Type = domain.QuestionType(qt)
		questions = append(questions, &q)
		byID[q.ID] = &q
	}
	if err := rows.Err(); err != nil {
		return nil, nil, store.NewStoreError("question", "list", "iteration failed", err)
	}
	return questions, byID, nil
}

func (s *PostgresExamStore) loadChoices(
	ctx context.Context,
	examID uuid.UUID,
	questions map[uuid.UUID]*domain.Question,
) error {
	rows, err := s.db.QueryContext(ctx, selectChoicesQuery, examID)
	if err != nil {
		return store.NewStoreError("choice", "list", "select failed", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var c domain.Choice
		if err := rows.Scan(&c.ID, &c.QuestionID, &c.Text, &c.IsCorrect, &c.Order); err != nil {
			return store.NewStoreError("choice", "list", "scan failed", err)
		}
		if q, ok := questions[c.QuestionID]; ok {
			q.Choices = append(q.Choices, &c)
		}
	}
	if err := rows.Err(); err != nil {
		return store.NewStoreError("choice", "list", "iteration failed", err)
	}
	return nil
}
