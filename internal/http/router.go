package httpapi

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires the handler's routes and standard middleware
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)

	// Routes
	r.Get("/health", h.HandleHealth)
	r.Post("/search", h.HandleSearch)
	r.Post("/matches", h.HandleMatches)

	r.Route("/collections", func(r chi.Router) {
		r.Get("/", h.HandleListCollections)
		r.Put("/{name}", h.HandlePutCollection)
		r.Get("/{name}", h.HandleGetCollection)
		r.Delete("/{name}", h.HandleDeleteCollection)
		r.Post("/{name}/search", h.HandleSearchCollection)
	})

	return r
}
