package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scientia/internal/common"
	"github.com/ternarybob/scientia/internal/interfaces"
)

// StatusResponse is the body returned by GET /api/status
type StatusResponse struct {
	Status           string   `json:"status"`
	Version          string   `json:"version"`
	CacheEntries     int      `json:"cache_entries"`
	KnowledgeEntries int      `json:"knowledge_entries"`
	CacheHitRate     *float64 `json:"cache_hit_rate"`
}

// StatusHandler reports aggregate system health and store sizes
type StatusHandler struct {
	cache     interfaces.CacheService
	knowledge interfaces.KnowledgeService
	logger    arbor.ILogger
}

// NewStatusHandler creates a new status handler with dependencies
func NewStatusHandler(cache interfaces.CacheService, knowledge interfaces.KnowledgeService, logger arbor.ILogger) *StatusHandler {
	return &StatusHandler{
		cache:     cache,
		knowledge: knowledge,
		logger:    logger,
	}
}

// StatusHandler handles GET /api/status requests
func (h *StatusHandler) StatusHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	status := "healthy"

	cacheStats, err := h.cache.Stats(r.Context())
	if err != nil {
		if h.logger != nil {
			h.logger.Error().Err(err).Msg("Failed to read cache stats")
		}
		status = "degraded"
	}

	knowledgeCount, err := h.knowledge.Count(r.Context())
	if err != nil {
		if h.logger != nil {
			h.logger.Error().Err(err).Msg("Failed to count knowledge entries")
		}
		status = "degraded"
	}

	response := StatusResponse{
		Status:           status,
		Version:          common.GetVersion(),
		KnowledgeEntries: knowledgeCount,
	}

	if cacheStats != nil {
		response.CacheEntries = cacheStats.TotalEntries
		if cacheStats.TotalEntries > 0 {
			hitRate := float64(cacheStats.TotalHits) / float64(cacheStats.TotalEntries)
			response.CacheHitRate = &hitRate
		}
	}

	WriteJSON(w, http.StatusOK, response)
}
