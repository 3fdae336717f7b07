package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/lms-api/internal/domain"
)

// ExamStore defines the interface for exam persistence. An exam is stored
// together with its questions and choices.
type ExamStore interface {
	// Create saves the exam with all of its questions and choices.
	// Returns ErrInvalidEntity if the exam fails domain validation.
	Create(ctx context.Context, exam *domain.Exam) error

	// GetByID retrieves an exam with its questions and choices, ordered by
	// position. Returns ErrExamNotFound if the exam does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Exam, error)

	// WithTx returns an ExamStore that runs its statements in tx.
	WithTx(tx *sql.Tx) ExamStore
}
