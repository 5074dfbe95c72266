package interfaces

import (
	"context"

	"github.com/ternarybob/scientia/internal/models"
)

// PipelineService is the single entry point exposed to the presentation
// layer: the tiered cache -> knowledge base -> external search cascade.
type PipelineService interface {
	// Search runs one query through the cascade and returns the result
	// envelope. Embedding, LLM and storage failures inside the cache and
	// knowledge tiers propagate; external provider failures do not.
	Search(ctx context.Context, query string) (*models.SearchResult, error)
}
