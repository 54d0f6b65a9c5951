package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/lexis/internal/api/middleware"
	"github.com/phrazzld/lexis/internal/service/study"
)

// NewRouter registers every route of the API on a chi router.
func NewRouter(studyService study.Service, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.NewTraceMiddleware(logger))
	r.Use(chimw.Recoverer)

	studyHandler := NewStudyHandler(studyService, logger)
	wordHandler := NewWordHandler(studyService, logger)

	r.Route("/api", func(r chi.Router) {
		r.Post("/words", wordHandler.CreateWords)
		r.Get("/words/{wordID}", wordHandler.GetWord)

		r.Route("/learners/{learnerID}", func(r chi.Router) {
			r.Post("/words/{wordID}/review", studyHandler.SubmitReview)
			r.Get("/study", studyHandler.GetStudyBatch)
			r.Get("/stats", studyHandler.GetStats)
			r.Delete("/records", studyHandler.ResetLearner)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			logger.Error("failed to write health check response", slog.String("error", err.Error()))
		}
	})

	return r
}
