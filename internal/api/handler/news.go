package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/passabola/passabola-data/internal/api/respond"
	"github.com/passabola/passabola-data/internal/cache"
)

const (
	newsDefaultLimit = 6
	newsMaxLimit     = 20
)

// GetNews returns merged women's football news.
// @Summary Aggregated news
// @Description Returns news merged from the configured feeds, padded with the curated fallback catalog when too few real items are found. The source field is "api" or "fallback".
// @Tags news
// @Produce json
// @Param limit query int false "Max items (1-20, default 6)"
// @Success 200 {object} external.NewsResponse
// @Router /news [get]
func (h *Handler) GetNews(w http.ResponseWriter, r *http.Request) {
	limit := newsDefaultLimit
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n >= 1 && n <= newsMaxLimit {
			limit = n
		}
	}

	key := "news:" + strconv.Itoa(limit)
	if data, etag, ok := h.cache.Get(key); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, cache.TTLNews, true)
		return
	}

	result := h.news.GetNews(r.Context(), limit)

	data, err := json.Marshal(result)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "MARSHAL_ERROR", "Failed to encode response")
		return
	}

	etag := h.cache.Set(key, data, cache.TTLNews)
	respond.WriteJSON(w, data, etag, cache.TTLNews, false)
}
