package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rogerio-castellano/listing-tracker/internal/http/handlers"
	rl "github.com/rogerio-castellano/listing-tracker/internal/http/rate_limiter"
)

// NewRouter assembles the API. visitors may be nil to disable inbound rate
// limiting (tests do that).
func NewRouter(visitors *rl.VisitorLimiter) http.Handler {
	r := chi.NewRouter()
	r.Use(RequestIDMiddleware)
	if visitors != nil {
		r.Use(RateLimitMiddleware(visitors))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/login", handlers.LoginHandler)
		r.Get("/products/{artikul}", handlers.GetProductHandler)
		r.Get("/sync/reports", handlers.SyncReportsHandler)

		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware)
			r.Post("/subscribe/{artikul}", handlers.SubscribeHandler)
			r.Post("/products", handlers.CreateProductHandler)
			r.Post("/sync", handlers.TriggerSyncHandler)
		})
	})

	return r
}
