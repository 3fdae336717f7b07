package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/lms-api/internal/domain"
	"github.com/phrazzld/lms-api/internal/platform/logger"
	"github.com/phrazzld/lms-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	insertExamRe     = regexp.QuoteMeta("INSERT INTO exams (")
	insertQuestionRe = regexp.QuoteMeta("INSERT INTO exam_questions (")
	insertChoiceRe   = regexp.QuoteMeta("INSERT INTO exam_choices (")
	selectExamRe     = regexp.QuoteMeta("FROM exams")
	selectQuestionRe = regexp.QuoteMeta("FROM exam_questions")
	selectChoiceRe   = regexp.QuoteMeta("FROM exam_choices c")
)

func sampleExam(t *testing.T) *domain.Exam {
	t.Helper()
	exam, err := domain.NewExam(uuid.New(), uuid.New(), "Quiz: Mars", "Answer all questions.")
	require.NoError(t, err)

	mc, err := exam.AddQuestion("Which planet is red?", domain.QuestionTypeMultipleChoice)
	require.NoError(t, err)
	_, err = mc.AddChoice("Venus", false)
	require.NoError(t, err)
	_, err = mc.AddChoice("Mars", true)
	require.NoError(t, err)

	_, err = exam.AddQuestion("Describe Olympus Mons.", domain.QuestionTypeShortAnswer)
	require.NoError(t, err)
	return exam
}

func newTestStore(t *testing.T) (*PostgresExamStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	log, _ := logger.NewTestLogger(t)
	return NewPostgresExamStore(db, log), mock
}

func newPgErrorForTest(code string) error {
	return &pgconn.PgError{Code: code, ConstraintName: "exam_questions_exam_id_fkey"}
}

func TestPostgresExamStore_CreateWritesAggregateInTransaction(t *testing.T) {
	s, mock := newTestStore(t)
	exam := sampleExam(t)
	mc := exam.Questions[0]

	mock.ExpectBegin()
	mock.ExpectExec(insertExamRe).
		WithArgs(exam.ID, exam.CourseID, exam.CreatedBy, exam.Title, exam.Instructions, "",
			domain.DefaultTimeLimitMinutes, true, exam.CreatedAt, exam.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(insertQuestionRe).
		WithArgs(mc.ID, exam.ID, mc.Text, "multiple_choice", 1, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(insertChoiceRe).
		WithArgs(mc.Choices[0].ID, mc.ID, "Venus", false, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(insertChoiceRe).
		WithArgs(mc.Choices[1].ID, mc.ID, "Mars", true, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(insertQuestionRe).
		WithArgs(exam.Questions[1].ID, exam.ID, "Describe Olympus Mons.", "short_answer", 1, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, s.Create(context.Background(), exam))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresExamStore_CreateRollsBackOnQuestionFailure(t *testing.T) {
	s, mock := newTestStore(t)
	exam := sampleExam(t)

	mock.ExpectBegin()
	mock.ExpectExec(insertExamRe).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(insertQuestionRe).WillReturnError(newPgErrorForTest("23503"))
	mock.ExpectRollback()

	err := s.Create(context.Background(), exam)
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrInvalidEntity)

	var se *store.StoreError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "question", se.Entity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresExamStore_CreateRejectsInvalidExam(t *testing.T) {
	s, mock := newTestStore(t)
	exam := sampleExam(t)
	exam.Title = ""

	err := s.Create(context.Background(), exam)
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
	assert.ErrorIs(t, err, domain.ErrEmptyExamTitle)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresExamStore_WithTxDoesNotManageTransaction(t *testing.T) {
	s, mock := newTestStore(t)
	exam, err := domain.NewExam(uuid.New(), uuid.New(), "Empty", "")
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec(insertExamRe).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := s.db.(*sql.DB).Begin()
	require.NoError(t, err)

	require.NoError(t, s.WithTx(tx).Create(context.Background(), exam))
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresExamStore_GetByID(t *testing.T) {
	s, mock := newTestStore(t)

	examID, courseID, creator := uuid.New(), uuid.New(), uuid.New()
	q1, q2 := uuid.New(), uuid.New()
	c1, c2 := uuid.New(), uuid.New()
	now := time.Now().UTC().Truncate(time.Second)

	mock.ExpectQuery(selectExamRe).WithArgs(examID).WillReturnRows(
		sqlmock.NewRows([]string{"id", "course_id", "created_by", "title", "instructions",
			"generated_content", "time_limit_minutes", "is_published", "created_at", "updated_at"}).
			AddRow(examID.String(), courseID.String(), creator.String(), "Quiz: Mars", "Go.",
				"QUESTION: ...", int64(60), true, now, now))
	mock.ExpectQuery(selectQuestionRe).WithArgs(examID).WillReturnRows(
		sqlmock.NewRows([]string{"id", "exam_id", "text", "question_type", "points", "position"}).
			AddRow(q1.String(), examID.String(), "Which planet is red?", "multiple_choice", int64(1), int64(1)).
			AddRow(q2.String(), examID.String(), "Is Mars red?", "true_false", int64(1), int64(2)))
	mock.ExpectQuery(selectChoiceRe).WithArgs(examID).WillReturnRows(
		sqlmock.NewRows([]string{"id", "question_id", "text", "is_correct", "position"}).
			AddRow(c1.String(), q1.String(), "Venus", false, int64(1)).
			AddRow(c2.String(), q1.String(), "Mars", true, int64(2)))

	exam, err := s.GetByID(context.Background(), examID)
	require.NoError(t, err)

	assert.Equal(t, examID, exam.ID)
	assert.Equal(t, "Quiz: Mars", exam.Title)
	assert.Equal(t, 60, exam.TimeLimitMinutes)
	require.Len(t, exam.Questions, 2)
	assert.Equal(t, domain.QuestionTypeMultipleChoice, exam.Questions[0].Type)
	require.Len(t, exam.Questions[0].Choices, 2)
	assert.True(t, exam.Questions[0].Choices[1].IsCorrect)
	assert.Empty(t, exam.Questions[1].Choices)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresExamStore_GetByIDNotFound(t *testing.T) {
	s, mock := newTestStore(t)
	id := uuid.New()

	mock.ExpectQuery(selectExamRe).WithArgs(id).WillReturnError(sql.ErrNoRows)

	_, err := s.GetByID(context.Background(), id)
	assert.ErrorIs(t, err, store.ErrExamNotFound)
	assert.True(t, store.IsNotFoundError(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresExamStore_GetByIDQueryFailure(t *testing.T) {
	s, mock := newTestStore(t)
	id := uuid.New()
	dbErr := errors.New("connection reset")

	mock.ExpectQuery(selectExamRe).WithArgs(id).WillReturnError(dbErr)

	_, err := s.GetByID(context.Background(), id)
	assert.ErrorIs(t, err, dbErr)
	assert.False(t, store.IsNotFoundError(err))
}

func TestNewPostgresExamStore_NilDBPanics(t *testing.T) {
	assert.Panics(t, func() { NewPostgresExamStore(nil, nil) })
}
