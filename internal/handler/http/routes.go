package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, h.withTraceID)

	router.Group(func(r chi.Router) {
		r.Use(h.withLogging, withGZip)

		// routes without authorization
		r.Get("/api/health", h.health)
		r.Get("/api/version", h.getServerVersion)
		r.Post("/api/user/register", h.register)
		r.Post("/api/user/login", h.login)

		r.Group(func(r chi.Router) {
			r.Use(h.auth)

			r.With(h.pushHashing).Post("/api/sync/push", h.push)
			r.Get("/api/sync/changes", h.changes)

			r.Get("/api/projects", h.listProjects)
			r.Post("/api/projects", h.createProject)

			r.Get("/api/collab/{documentID}/participants", h.participants)
		})
	})

	// the websocket endpoint hijacks the connection, so it skips the
	// response wrapping middlewares
	router.Group(func(r chi.Router) {
		r.Use(h.wsAuth)
		r.Get("/api/collab/ws", h.collaborate)
	})

	router.MethodNotAllowed(methodNotFound)

	return router
}
