package router

import (
	"stockroom-rest-api/internal/handler"
	"stockroom-rest-api/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// Config holds the configuration for creating a router.
type Config struct {
	Handler       *handler.Handler
	ItemHandler   *handler.ItemHandler
	LookupHandler *handler.LookupHandler
}

// New creates and configures the HTTP router.
func New(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware stack (applies to ALL routes)
	r.Use(middleware.Recovery)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/api", func(r chi.Router) {
		if cfg.Handler != nil {
			r.Get("/health", cfg.Handler.Health)
			r.Get("/status", cfg.Handler.Status)
		}

		if cfg.ItemHandler != nil {
			r.Route("/items", func(r chi.Router) {
				r.Get("/", cfg.ItemHandler.List)
				r.Post("/", cfg.ItemHandler.Create)

				if cfg.LookupHandler != nil {
					r.Post("/from_lookup", cfg.LookupHandler.CreateFromLookup)
				}

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", cfg.ItemHandler.Get)
					r.Patch("/", cfg.ItemHandler.Update)
					r.Delete("/", cfg.ItemHandler.Delete)
					r.Post("/restock", cfg.ItemHandler.Restock)
					r.Post("/deduct", cfg.ItemHandler.Deduct)
				})
			})
		}

		if cfg.LookupHandler != nil {
			r.Get("/lookup/{barcode}", cfg.LookupHandler.Lookup)
			r.Get("/search", cfg.LookupHandler.Search)
		}
	})

	return r
}
