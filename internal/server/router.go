package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"workflow-demo/internal/calculator"
	"workflow-demo/internal/config"
	"workflow-demo/internal/handlers"
	"workflow-demo/internal/observability"
)

func NewRouter(cfg config.Config, site *handlers.Site) http.Handler {

	r := chi.NewRouter()

	r.Use(observability.RequestIDMiddleware)
	r.Use(observability.TracingMiddleware)
	r.Use(observability.LoggingMiddleware)
	r.Use(observability.MetricsMiddleware)
	r.Use(observability.RecoverMiddleware(cfg.Debug))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", observability.RequestIDHeader},
		ExposedHeaders: []string{observability.RequestIDHeader},
		MaxAge:         300,
	}))

	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.NotFound)

	r.Get("/", site.Welcome)
	r.Get("/health", site.Health)
	r.Get("/api/demo", site.Demo)
	calculator.RegisterRoutes(r)

	r.Handle("/metrics", observability.PrometheusHandler())

	return r
}
