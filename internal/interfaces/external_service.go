package interfaces

import (
	"context"

	"github.com/ternarybob/scientia/internal/models"
)

// ExternalSearchService queries remote document sources and normalizes
// their results into Documents. Transport and parse failures are swallowed
// and degrade to empty results; this tier never raises to its caller.
type ExternalSearchService interface {
	// SearchArxiv queries the arXiv API with a disjunctive exact-phrase
	// query over the keywords. Empty keywords return an empty list with no
	// network call.
	SearchArxiv(ctx context.Context, keywords []string, maxResults int) []*models.Document

	// SearchHuggingFace queries the HuggingFace Hub model search. Empty
	// keywords return an empty list with no network call.
	SearchHuggingFace(ctx context.Context, keywords []string, maxResults int) []*models.Document

	// SearchAll queries both providers and concatenates their results,
	// arXiv first. Only per-provider caps apply.
	SearchAll(ctx context.Context, keywords []string, maxPerSource int) []*models.Document

	// Close releases held network resources; idempotent
	Close()
}
