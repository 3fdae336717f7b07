package service

import (
	"database/sql"

	"github.com/phrazzld/lms-api/internal/store"
)

// ExamRepositoryAdapter adapts a store.ExamStore and its database handle to
// ExamRepository so the service can open transactions around store calls.
type ExamRepositoryAdapter struct {
	store.ExamStore
	db *sql.DB
}

// NewExamRepositoryAdapter creates an ExamRepository backed by examStore.
// db may be nil, in which case writes are not wrapped in a service-level
// transaction.
func NewExamRepositoryAdapter(examStore store.ExamStore, db *sql.DB) *ExamRepositoryAdapter {
	return &ExamRepositoryAdapter{
		ExamStore: examStore,
		db:        db,
	}
}

// WithTx returns an adapter whose store runs inside tx.
func (a *ExamRepositoryAdapter) WithTx(tx *sql.Tx) ExamRepository {
	return &ExamRepositoryAdapter{
		ExamStore: a.ExamStore.WithTx(tx),
		db:        a.db,
	}
}

// DB returns the underlying database handle.
func (a *ExamRepositoryAdapter) DB() *sql.DB {
	return a.db
}

var _ ExamRepository = (*ExamRepositoryAdapter)(nil)
