package interfaces

import (
	"github.com/ternarybob/scientia/internal/models"
)

// CacheStorage persists semantic cache entries with an
// embedding-ordered nearest-neighbor lookup
type CacheStorage interface {
	// Insert persists a new cache entry
	Insert(entry *models.CacheEntry) error

	// Nearest returns the single stored entry closest to the embedding,
	// with its cosine similarity. Returns (nil, 0, nil) on an empty store.
	Nearest(embedding []float32) (*models.CacheEntry, float64, error)

	// IncrementHitCount atomically increments an entry's hit counter
	// in place and returns the new count
	IncrementHitCount(id string) (int, error)

	// Stats aggregates entry and hit counters across the store
	Stats() (*models.CacheStats, error)

	// Clear removes every entry and returns the count deleted
	Clear() (int, error)
}

// KnowledgeStorage persists knowledge documents with an embedding-ordered
// nearest-neighbor index
type KnowledgeStorage interface {
	// Insert persists a new document
	Insert(doc *models.Document) error

	// QueryNearest returns up to k documents ranked by cosine similarity
	// to the embedding, descending, with raw similarity populated on each
	QueryNearest(embedding []float32, k int) ([]models.ScoredDocument, error)

	// Count returns the total number of stored documents
	Count() (int, error)

	// Clear removes every document and returns the count deleted.
	// Administrative bulk operation; individual deletes are not supported.
	Clear() (int, error)
}

// StorageManager provides access to all storage implementations
type StorageManager interface {
	CacheStorage() CacheStorage
	KnowledgeStorage() KnowledgeStorage
	Close() error
}
