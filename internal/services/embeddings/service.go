package embeddings

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scientia/internal/interfaces"
	"github.com/ternarybob/scientia/internal/models"
)

// Service generates vector embeddings through the configured LLM provider
type Service struct {
	llm       interfaces.LLMService
	dimension int
	logger    arbor.ILogger
}

// NewService creates a new embedding service
func NewService(llm interfaces.LLMService, dimension int, logger arbor.ILogger) interfaces.EmbeddingService {
	return &Service{
		llm:       llm,
		dimension: dimension,
		logger:    logger,
	}
}

// GenerateEmbedding generates an embedding vector for raw text
func (s *Service) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, fmt.Errorf("text cannot be empty")
	}
	return s.llm.Embed(ctx, text)
}

// EmbedDocument generates and sets the embedding for a document's content
func (s *Service) EmbedDocument(ctx context.Context, doc *models.Document) error {
	if doc == nil {
		return fmt.Errorf("document cannot be nil")
	}
	if doc.Content == "" {
		return fmt.Errorf("document content cannot be empty")
	}

	embedding, err := s.llm.Embed(ctx, doc.Content)
	if err != nil {
		return fmt.Errorf("failed to embed document %s: %w", doc.ID, err)
	}

	doc.Embedding = embedding
	return nil
}

// GenerateQueryEmbedding generates an embedding for a search query.
// Queries and documents share the same embedding space.
func (s *Service) GenerateQueryEmbedding(ctx context.Context, query string) ([]float32, error) {
	if query == "" {
		return nil, fmt.Errorf("query cannot be empty")
	}
	return s.llm.Embed(ctx, query)
}

// Dimension returns the configured embedding dimensionality
func (s *Service) Dimension() int {
	return s.dimension
}
