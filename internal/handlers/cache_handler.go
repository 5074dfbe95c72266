package handlers

import (
	"fmt"
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scientia/internal/interfaces"
)

// CacheHandler exposes semantic cache administration endpoints
type CacheHandler struct {
	cache  interfaces.CacheService
	logger arbor.ILogger
}

// NewCacheHandler creates a new cache handler with dependencies
func NewCacheHandler(cache interfaces.CacheService, logger arbor.ILogger) *CacheHandler {
	return &CacheHandler{
		cache:  cache,
		logger: logger,
	}
}

// StatsHandler handles GET /api/cache/stats requests
func (h *CacheHandler) StatsHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	stats, err := h.cache.Stats(r.Context())
	if err != nil {
		if h.logger != nil {
			h.logger.Error().Err(err).Msg("Failed to read cache stats")
		}
		WriteError(w, http.StatusInternalServerError, "Failed to read cache stats")
		return
	}

	WriteJSON(w, http.StatusOK, stats)
}

// ClearHandler handles POST /api/cache/clear requests
func (h *CacheHandler) ClearHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	deleted, err := h.cache.Clear(r.Context())
	if err != nil {
		if h.logger != nil {
			h.logger.Error().Err(err).Msg("Failed to clear cache")
		}
		WriteError(w, http.StatusInternalServerError, "Failed to clear cache")
		return
	}

	WriteSuccess(w, fmt.Sprintf("Cleared %d cache entries", deleted))
}
