package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/paperdesk/paperdesk/internal/httpserver/deps"
	"github.com/paperdesk/paperdesk/internal/httpserver/handlers"
	"github.com/paperdesk/paperdesk/internal/httpserver/mw"
)

func init() { Register(registerPapers) }

func registerPapers(r chi.Router, d deps.Deps) {
	r.Get("/papers", handlers.ListPapers(d))
	r.Get("/papers/{id}", handlers.GetPaper(d))

	// Writes are rate limited per IP.
	writes := r.With(mw.RateLimit(mw.RateLimitConfig{
		Burst:             d.RateLimitBurst,
		RefillPerIPPerMin: d.RateLimitPerMin,
		TrustProxy:        d.TrustProxy,
	}))
	writes.Post("/papers/{id}/upvote", handlers.Upvote(d))
	writes.Post("/papers/{id}/downvote", handlers.Downvote(d))
	writes.Post("/papers/{id}/comments", handlers.PostComment(d))
}
