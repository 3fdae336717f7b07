package api

import (
	"net/http"

	"github.com/phrazzld/lms-api/internal/api/shared"
)

// ReadinessChecker reports whether the generation backend is configured.
type ReadinessChecker interface {
	Name() string
	Ready() error
}

// HealthHandler serves GET /health. The process is healthy even when the
// backend is unconfigured; the generation field reports that separately.
func HealthHandler(backend ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := HealthResponse{
			Status:     "ok",
			Generation: "ready",
			Backend:    backend.Name(),
		}
		if err := backend.Ready(); err != nil {
			resp.Generation = "unconfigured"
		}
		shared.RespondWithJSON(w, r, http.StatusOK, resp)
	}
}
