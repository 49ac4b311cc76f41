package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vaultpass/passgen-go/internal/middleware"
	"github.com/vaultpass/passgen-go/internal/service"
)

// RouterConfig holds the dependencies mounted by NewRouter.
type RouterConfig struct {
	Generator   *service.GeneratorService
	Stats       *service.StatsService // nil disables /api/v1/stats
	RateLimiter *middleware.RateLimiter
	JWTSecret   string
}

// NewRouter builds the API routes.
func NewRouter(cfg RouterConfig) chi.Router {
	genHandler := NewGeneratorHandler(cfg.Generator)

	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/api/v1/classes", genHandler.HandleClasses)

	r.Group(func(r chi.Router) {
		if cfg.RateLimiter != nil {
			r.Use(cfg.RateLimiter.Handler)
		}
		r.Post("/api/v1/generate", genHandler.HandleGenerate)
		r.Post("/api/v1/verify", genHandler.HandleVerify)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(cfg.JWTSecret))
		r.Post("/api/v1/generate/batch", genHandler.HandleBatch)

		if cfg.Stats != nil {
			r.Get("/api/v1/stats", NewStatsHandler(cfg.Stats).HandleStats)
		}
	})

	return r
}
