package api

import (
	"delivery-emissions-service/internal/api/handlers"
	"delivery-emissions-service/internal/platform/obs"
	"delivery-emissions-service/internal/services"
	"delivery-emissions-service/internal/session"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(reg *session.Registry, deps services.Collaborators) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware)
	r.Use(middleware.Recoverer)

	sessions := &handlers.SessionHandler{Registry: reg}
	predictions := &handlers.PredictionHandler{Registry: reg, Deps: deps}
	deliveries := &handlers.DeliveryHandler{Registry: reg}

	r.Get("/health", handlers.Health)
	r.Method(http.MethodGet, "/metrics", obs.MetricsHandler())
	r.Get("/vehicles", handlers.Vehicles)

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", sessions.Create)

		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", sessions.Get)
			r.Delete("/", sessions.Delete)
			r.Post("/predictions", predictions.Predict)

			r.Route("/deliveries", func(r chi.Router) {
				r.Get("/", deliveries.List)
				r.Delete("/", deliveries.Clear)
				r.Get("/series", deliveries.Series)
				r.Get("/export", deliveries.Export)
				r.Get("/{index}/export", deliveries.ExportOne)
			})
		})
	})

	return r
}
