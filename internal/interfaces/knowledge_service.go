package interfaces

import (
	"context"

	"github.com/ternarybob/scientia/internal/models"
)

// KnowledgeService is the knowledge base tier: ingested documents served by
// time-weighted nearest-neighbor search.
type KnowledgeService interface {
	// Search embeds the joined keywords and returns up to limit documents
	// re-ranked by the hybrid similarity/recency score. Candidates below
	// minSimilarity (raw similarity, not hybrid score) are discarded.
	// Empty keywords return an empty list without touching storage; an
	// empty result is the caller's signal to escalate to external search.
	Search(ctx context.Context, keywords []string, limit int, minSimilarity float64) ([]models.ScoredDocument, error)

	// Ingest embeds the document content and persists it unconditionally,
	// returning the generated identifier.
	Ingest(ctx context.Context, doc *models.Document) (string, error)

	// IngestBatch ingests documents sequentially, returning identifiers in
	// call order. A failed ingestion does not roll back prior ones.
	IngestBatch(ctx context.Context, docs []*models.Document) ([]string, error)

	// Count returns the total number of stored documents
	Count(ctx context.Context) (int, error)
}
