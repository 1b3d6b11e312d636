package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/paperdesk/paperdesk/internal/httpserver/deps"
	"github.com/paperdesk/paperdesk/internal/httpserver/handlers"
)

func init() { Register(registerSessions) }

func registerSessions(r chi.Router, d deps.Deps) {
	r.Post("/sessions", handlers.CreateSession(d))
	r.Delete("/sessions", handlers.DeleteSession(d))
}
