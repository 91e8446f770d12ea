// Package handler provides HTTP handlers for all API endpoints. Handlers are
// thin: the aggregation services decide where data comes from; handlers only
// cache and encode.
package handler

import (
	"net/http"
	"time"

	"github.com/passabola/passabola-data/internal/api/respond"
	"github.com/passabola/passabola-data/internal/cache"
	"github.com/passabola/passabola-data/internal/config"
	"github.com/passabola/passabola-data/internal/external"
	"github.com/passabola/passabola-data/internal/match"
)

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	matches *match.Service
	news    *external.NewsService
	cache   *cache.Cache
	cfg     *config.Config
}

// New creates a Handler with shared dependencies.
func New(matches *match.Service, news *external.NewsService, c *cache.Cache, cfg *config.Config) *Handler {
	return &Handler{
		matches: matches,
		news:    news,
		cache:   c,
		cfg:     cfg,
	}
}

// Root serves API info at /.
// @Summary API root info
// @Description Returns API name, version, status, and data mode.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"name":    "Passa a Bola Data API",
		"version": "1.0.0",
		"status":  "running",
		"mode":    h.matches.Mode(),
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Description Returns health status, entitlement mode, and cache statistics.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"mode":      h.matches.Mode(),
		"cache":     h.cache.Stats(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
