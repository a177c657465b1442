package server

import (
	"net/http"

	"github.com/deskmate-ai/deskmate/internal/api/handlers"
	"github.com/deskmate-ai/deskmate/internal/api/middleware"
	"github.com/go-chi/chi/v5"
)

// RouterConfig wires the HTTP surface of spec.md §6. Multi-tenant
// isolation and authentication are explicit spec.md Non-goals, so unlike
// the teacher's router this carries no auth-gated route group.
type RouterConfig struct {
	IngestHandler *handlers.IngestHandler
	AskHandler    *handlers.AskHandler
	HealthHandler *handlers.HealthHandler
	MaxAskBytes   int64
}

// NewRouter builds the chi router for the service.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	const maxIngestBytes int64 = 5 * 1024 * 1024
	maxAskBytes := cfg.MaxAskBytes
	if maxAskBytes == 0 {
		maxAskBytes = 1024 * 1024
	}

	r.Use(middleware.RequestID)
	r.Use(middleware.SentryMiddleware)
	r.Use(middleware.AccessLog)

	r.Get("/health", cfg.HealthHandler.Get)

	r.Route("/ingest", func(r chi.Router) {
		r.Use(middleware.MaxBodyBytes(maxIngestBytes))
		r.Post("/paste", cfg.IngestHandler.Paste)
		r.Post("/pdf", cfg.IngestHandler.PDF)
		r.Post("/url", cfg.IngestHandler.URL)
	})

	r.With(middleware.MaxBodyBytes(maxAskBytes)).Post("/ask", cfg.AskHandler.Ask)

	return r
}
