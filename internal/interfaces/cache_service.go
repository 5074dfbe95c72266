package interfaces

import (
	"context"

	"github.com/ternarybob/scientia/internal/models"
)

// CacheService is the semantic cache tier: previously synthesized responses
// retrieved by embedding proximity to the incoming query.
type CacheService interface {
	// Search returns the single nearest cached entry whose similarity to the
	// query meets the configured threshold, with its hit counter incremented
	// and the observed similarity annotated. Returns (nil, nil) on a miss;
	// a miss is not an error.
	Search(ctx context.Context, query string) (*models.CacheEntry, error)

	// Store persists a new (query, response, sources) entry unconditionally
	// and returns its generated identifier. Near-duplicate entries below the
	// search threshold are permitted to coexist.
	Store(ctx context.Context, query, response string, sources []models.SourceInfo) (string, error)

	// Stats returns aggregate cache usage counters
	Stats(ctx context.Context) (*models.CacheStats, error)

	// Clear removes every entry and returns the count deleted
	Clear(ctx context.Context) (int, error)
}
