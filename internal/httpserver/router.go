package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"

	"align-coach-backend/internal/insight"
	"align-coach-backend/internal/middleware"
)

// analyzePaths are served by the same handler: "/" for a standalone
// deployment, "/api/analyze" for platform-routed functions.
var analyzePaths = []string{"/", "/api/analyze"}

func NewRouter(h *insight.Handler, checkers map[string]middleware.HealthChecker) http.Handler {
	mux := chi.NewRouter()
	mux.Use(middleware.Logging)

	mux.Get("/health", middleware.HealthHandler(checkers))
	mux.Get("/healthz", middleware.LivenessHandler)

	for _, p := range analyzePaths {
		mux.Post(p, h.Analyze)
		mux.Options(p, h.Options)
	}

	// Passthrough so preflight always reaches insight.Options and its static headers.
	c := cors.New(cors.Options{
		AllowedOrigins:     []string{"*"},
		AllowedMethods:     []string{http.MethodPost, http.MethodOptions},
		AllowedHeaders:     []string{"Content-Type"},
		OptionsPassthrough: true,
	})

	return c.Handler(mux)
}
