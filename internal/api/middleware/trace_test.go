package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/lms-api/internal/api/shared"
	"github.com/phrazzld/lms-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceMiddleware(t *testing.T) {
	log, buf := logger.NewTestLogger(t)

	var traceID string
	handler := TraceMiddleware(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID = shared.GetTraceID(r.Context())
		logger.FromContext(r.Context()).Info("inside handler")
		w.WriteHeader(http.StatusTeapot)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Len(t, traceID, 2*shared.TraceIDLength)
	assert.Equal(t, http.StatusTeapot, w.Code)

	inside := buf.EntriesWithMessage(t, "inside handler")
	require.Len(t, inside, 1)
	assert.Equal(t, traceID, inside[0]["trace_id"])

	done := buf.EntriesWithMessage(t, "request completed")
	require.Len(t, done, 1)
	assert.Equal(t, float64(http.StatusTeapot), done[0]["status"])
	assert.Equal(t, traceID, done[0]["trace_id"])
}
