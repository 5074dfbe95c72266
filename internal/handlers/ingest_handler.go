package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scientia/internal/interfaces"
	"github.com/ternarybob/scientia/internal/models"
)

// IngestRequest is the body of POST /api/ingest
type IngestRequest struct {
	Content      string          `json:"content" validate:"required,min=1"`
	SourceType   string          `json:"source_type" validate:"required"`
	SourceURL    string          `json:"source_url,omitempty"`
	SourceTitle  string          `json:"source_title,omitempty"`
	SourceAuthor string          `json:"source_author,omitempty"`
	Metadata     models.Metadata `json:"metadata,omitempty"`
}

// IngestResponse is the body returned by POST /api/ingest
type IngestResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	KnowledgeID string `json:"knowledge_id,omitempty"`
}

// IngestHandler handles manual knowledge base ingestion requests
type IngestHandler struct {
	knowledge interfaces.KnowledgeService
	validate  *validator.Validate
	logger    arbor.ILogger
}

// NewIngestHandler creates a new ingest handler with dependencies
func NewIngestHandler(knowledge interfaces.KnowledgeService, logger arbor.ILogger) *IngestHandler {
	return &IngestHandler{
		knowledge: knowledge,
		validate:  validator.New(),
		logger:    logger,
	}
}

// IngestHandler handles POST /api/ingest requests
func (h *IngestHandler) IngestHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req IngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Content and source_type are required")
		return
	}

	sourceType := models.SourceType(req.SourceType)
	if !sourceType.IsValid() {
		WriteError(w, http.StatusBadRequest, "Unknown source_type")
		return
	}

	doc := &models.Document{
		Content:      req.Content,
		SourceType:   sourceType,
		SourceURL:    req.SourceURL,
		SourceTitle:  req.SourceTitle,
		SourceAuthor: req.SourceAuthor,
		Metadata:     req.Metadata,
	}

	id, err := h.knowledge.Ingest(r.Context(), doc)
	if err != nil {
		if h.logger != nil {
			h.logger.Error().Err(err).Msg("Ingestion failed")
		}
		WriteError(w, http.StatusInternalServerError, "Ingestion failed")
		return
	}

	WriteJSON(w, http.StatusOK, IngestResponse{
		Success:     true,
		Message:     "Content ingested successfully",
		KnowledgeID: id,
	})
}
