package interfaces

import (
	"context"

	"github.com/ternarybob/scientia/internal/models"
)

// EmbeddingService generates vector embeddings
type EmbeddingService interface {
	// Generate embedding for raw text
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)

	// Generate and set embedding for a document
	EmbedDocument(ctx context.Context, doc *models.Document) error

	// Generate query embedding (may have different handling than document embedding)
	GenerateQueryEmbedding(ctx context.Context, query string) ([]float32, error)

	// Get model information
	Dimension() int
}
