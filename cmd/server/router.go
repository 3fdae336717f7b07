package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/lms-api/internal/api"
	apiMiddleware "github.com/phrazzld/lms-api/internal/api/middleware"
	"github.com/phrazzld/lms-api/internal/api/shared"
)

// setupRouter creates the router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))

	generationHandler := api.NewGenerationHandler(app.generationService)

	r.Route("/api", func(r chi.Router) {
		r.Route("/generate", func(r chi.Router) {
			r.Post("/lesson-plan", generationHandler.LessonPlan)
			r.Post("/quiz", generationHandler.Quiz)
			r.Post("/rubric", generationHandler.Rubric)
			r.Post("/explanation", generationHandler.Explanation)
			r.Post("/syllabus", generationHandler.Syllabus)
		})
		r.Post("/parse", generationHandler.Parse)

		if app.examService != nil {
			examHandler := api.NewExamHandler(app.examService)
			r.Post("/exams", examHandler.CreateExam)
			r.Get("/exams/{id}", examHandler.GetExam)
		} else {
			r.Post("/exams", examsUnavailable)
			r.Get("/exams/{id}", examsUnavailable)
		}
	})

	r.Get("/health", api.HealthHandler(app.backend))

	return r
}

func examsUnavailable(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithError(w, r, http.StatusServiceUnavailable, "Exam persistence is not configured")
}
