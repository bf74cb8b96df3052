package calculator

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts the calculator endpoints onto the given router.
func RegisterRoutes(r chi.Router) {
	r.Post("/api/calculate", Calculate)
	r.Post("/api/calculate/chain", Chain)
}
