package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"

	"github.com/passabola/passabola-data/internal/api/handler"
	"github.com/passabola/passabola-data/internal/cache"
	"github.com/passabola/passabola-data/internal/config"
	"github.com/passabola/passabola-data/internal/external"
	"github.com/passabola/passabola-data/internal/match"
)

// NewRouter creates and configures the Chi router with all middleware and routes.
func NewRouter(matches *match.Service, news *external.NewsService, appCache *cache.Cache, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(TimingMiddleware)
	r.Use(middleware.Compress(5)) // gzip

	// CORS
	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Content-Type", "If-None-Match", "Cache-Control"},
		ExposedHeaders:   []string{"X-Process-Time", "X-Cache", "ETag"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	// Rate limiting
	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	// --- Handler dependencies ---
	h := handler.New(matches, news, appCache, cfg)

	// --- Routes ---

	r.Get("/", h.Root)
	r.Get("/health", h.HealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		// Matches
		r.Get("/matches/live", h.GetLiveMatches)
		r.Get("/matches/upcoming", h.GetUpcomingMatches)
		r.Get("/matches/status", h.GetAPIStatus)
		r.Get("/matches/{fixtureID}", h.GetMatchDetails)

		// News
		r.Get("/news", h.GetNews)
	})

	return r
}
