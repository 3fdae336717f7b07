//go:build integration

package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/phrazzld/lms-api/internal/platform/logger"
	"github.com/phrazzld/lms-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresExamStore_Integration(t *testing.T) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := Open(ctx, url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	log, _ := logger.NewTestLogger(t)
	require.NoError(t, Migrate(ctx, db, log))

	s := NewPostgresExamStore(db, log)
	exam := sampleExam(t)
	t.Cleanup(func() {
		_, _ = db.ExecContext(context.Background(), "DELETE FROM exams WHERE id = $1", exam.ID)
	})

	require.NoError(t, s.Create(ctx, exam))

	got, err := s.GetByID(ctx, exam.ID)
	require.NoError(t, err)
	assert.Equal(t, exam.Title, got.Title)
	require.Len(t, got.Questions, 2)
	assert.Equal(t, "Which planet is red?", got.Questions[0].Text)
	require.Len(t, got.Questions[0].Choices, 2)
	assert.Equal(t, "Mars", got.Questions[0].Choices[1].Text)
	assert.True(t, got.Questions[0].Choices[1].IsCorrect)

	err = s.Create(ctx, exam)
	assert.True(t, store.IsDuplicateError(err))
}
