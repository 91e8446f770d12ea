package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/passabola/passabola-data/internal/api/respond"
	"github.com/passabola/passabola-data/internal/cache"
	"github.com/passabola/passabola-data/internal/match"
)

// GetLiveMatches returns current in-progress fixtures.
// @Summary Live matches
// @Description Returns live fixtures from the provider when premium access is available, synthetic fixtures otherwise. The source field marks provenance.
// @Tags matches
// @Produce json
// @Success 200 {object} match.Envelope
// @Router /matches/live [get]
func (h *Handler) GetLiveMatches(w http.ResponseWriter, r *http.Request) {
	h.serveEnvelope(w, r, "matches:live", cache.TTLLive, func() match.Envelope {
		return h.matches.LiveMatches(r.Context())
	})
}

// GetUpcomingMatches returns fixtures scheduled in the next seven days.
// @Summary Upcoming matches
// @Description Returns not-started fixtures for the next week, synthetic when real data is unavailable.
// @Tags matches
// @Produce json
// @Success 200 {object} match.Envelope
// @Router /matches/upcoming [get]
func (h *Handler) GetUpcomingMatches(w http.ResponseWriter, r *http.Request) {
	h.serveEnvelope(w, r, "matches:upcoming", cache.TTLUpcoming, func() match.Envelope {
		return h.matches.UpcomingMatches(r.Context())
	})
}

// GetMatchDetails returns a single fixture by id.
// @Summary Match details
// @Description Returns one fixture. Falls back to a synthetic record carrying the requested id when the real lookup fails.
// @Tags matches
// @Produce json
// @Param fixtureID path int true "Fixture ID"
// @Success 200 {object} match.Envelope
// @Failure 400 {object} respond.ErrorResponse
// @Router /matches/{fixtureID} [get]
func (h *Handler) GetMatchDetails(w http.ResponseWriter, r *http.Request) {
	fixtureID, err := strconv.Atoi(chi.URLParam(r, "fixtureID"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_FIXTURE_ID",
			"fixtureID must be an integer")
		return
	}

	key := "matches:details:" + strconv.Itoa(fixtureID)
	h.serveEnvelope(w, r, key, cache.TTLLive, func() match.Envelope {
		return h.matches.MatchDetails(r.Context(), fixtureID)
	})
}

// GetAPIStatus reports the process-wide entitlement state.
// @Summary Provider entitlement status
// @Description Reports whether premium provider access was detected at startup. The flag is probed once and never re-evaluated.
// @Tags matches
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /matches/status [get]
func (h *Handler) GetAPIStatus(w http.ResponseWriter, r *http.Request) {
	message := "Usando dados simulados (API Free)"
	if h.matches.HasPremiumAccess() {
		message = "API Premium detectada"
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"hasPremiumAccess": h.matches.HasPremiumAccess(),
		"mode":             h.matches.Mode(),
		"message":          message,
	})
}

// serveEnvelope runs one aggregator query behind the response cache.
func (h *Handler) serveEnvelope(w http.ResponseWriter, r *http.Request, key string, ttl time.Duration, query func() match.Envelope) {
	if data, etag, ok := h.cache.Get(key); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, ttl, true)
		return
	}

	env := query()

	data, err := json.Marshal(env)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "MARSHAL_ERROR", "Failed to encode response")
		return
	}

	// Error envelopes are not cached so the next request retries the pipeline.
	if !env.Success {
		respond.WriteJSON(w, data, cache.ComputeETag(data), 0, false)
		return
	}

	etag := h.cache.Set(key, data, ttl)
	respond.WriteJSON(w, data, etag, ttl, false)
}
