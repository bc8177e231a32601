/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the chi router, middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for a future frontend

SECURITY NOTE:
  No authentication middleware. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cli/serve.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Route("/premieres", func(r chi.Router) {
			r.Get("/", h.ListPremieres)
			r.Post("/", h.CreatePremiere)
			r.Get("/{id}", h.GetPremiere)
			r.Delete("/{id}", h.DeletePremiere)
			r.Get("/{id}/report", h.GetPremiereReport)
			r.Post("/{id}/tickets/sell", h.SellTickets)
			r.Post("/{id}/tickets/return", h.ReturnTickets)
			r.Post("/{id}/guests", h.AddGuest)
			r.Post("/{id}/reviews", h.AddReview)
			r.Post("/{id}/budget", h.ContributeBudget)
		})

		r.Route("/finance", func(r chi.Router) {
			r.Get("/records", h.ListRecords)
			r.Post("/records", h.CreateRecord)
			r.Delete("/records/{id}", h.DeleteRecord)
			r.Get("/report", h.GetReport)
		})
	})

	return r
}
