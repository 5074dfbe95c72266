package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scientia/internal/interfaces"
)

// SearchRequest is the body of POST /api/search
type SearchRequest struct {
	Query string `json:"query" validate:"required,min=1,max=1000"`
}

// SearchHandler handles retrieval pipeline HTTP requests
type SearchHandler struct {
	pipeline interfaces.PipelineService
	validate *validator.Validate
	logger   arbor.ILogger
}

// NewSearchHandler creates a new search handler with dependencies
func NewSearchHandler(pipeline interfaces.PipelineService, logger arbor.ILogger) *SearchHandler {
	return &SearchHandler{
		pipeline: pipeline,
		validate: validator.New(),
		logger:   logger,
	}
}

// SearchHandler handles POST /api/search requests
func (h *SearchHandler) SearchHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Query must be between 1 and 1000 characters")
		return
	}

	if h.logger != nil {
		h.logger.Info().
			Str("query", req.Query).
			Msg("Search request received")
	}

	result, err := h.pipeline.Search(r.Context(), req.Query)
	if err != nil {
		if h.logger != nil {
			h.logger.Error().Err(err).Msg("Search pipeline failed")
		}
		WriteError(w, http.StatusInternalServerError, "Search failed")
		return
	}

	WriteJSON(w, http.StatusOK, result)
}
