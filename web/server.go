package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewServer wires routes and returns an http.Handler.
func NewServer(s *Service) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	h := &handlers{svc: s}
	r.Post("/games", h.create)
	r.Route("/games/{id}", func(r chi.Router) {
		r.Get("/", h.get)
		r.Post("/moves", h.play)
	})
	return r
}
