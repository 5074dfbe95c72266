package badger

import (
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scientia/internal/interfaces"
	"github.com/ternarybob/scientia/internal/models"
	"github.com/ternarybob/scientia/internal/services/ranking"
	"github.com/timshannon/badgerhold/v4"
)

// CacheStorage implements the CacheStorage interface for Badger.
// Nearest-neighbor lookup is a brute-force cosine scan over all entries;
// the semantic cache stays small enough that this beats maintaining a
// separate vector index.
type CacheStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewCacheStorage creates a new CacheStorage instance
func NewCacheStorage(db *BadgerDB, logger arbor.ILogger) interfaces.CacheStorage {
	return &CacheStorage{
		db:     db,
		logger: logger,
	}
}

func (s *CacheStorage) Insert(entry *models.CacheEntry) error {
	if entry.ID == "" {
		return fmt.Errorf("cache entry ID is required")
	}
	if len(entry.QueryEmbedding) == 0 {
		return fmt.Errorf("cache entry embedding is required")
	}

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	if err := s.db.Store().Insert(entry.ID, entry); err != nil {
		return fmt.Errorf("failed to insert cache entry: %w", err)
	}
	return nil
}

func (s *CacheStorage) Nearest(embedding []float32) (*models.CacheEntry, float64, error) {
	var entries []models.CacheEntry
	if err := s.db.Store().Find(&entries, nil); err != nil {
		return nil, 0, fmt.Errorf("failed to scan cache entries: %w", err)
	}

	if len(entries) == 0 {
		return nil, 0, nil
	}

	bestIdx := -1
	bestSim := -1.0
	for i := range entries {
		sim := ranking.CosineSimilarity(embedding, entries[i].QueryEmbedding)
		if sim > bestSim {
			bestSim = sim
			bestIdx = i
		}
	}

	return &entries[bestIdx], bestSim, nil
}

func (s *CacheStorage) IncrementHitCount(id string) (int, error) {
	newCount := 0
	err := s.db.Store().UpdateMatching(&models.CacheEntry{}, badgerhold.Where("ID").Eq(id), func(record interface{}) error {
		entry, ok := record.(*models.CacheEntry)
		if !ok {
			return fmt.Errorf("unexpected record type %T", record)
		}
		entry.HitCount++
		newCount = entry.HitCount
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to increment hit count: %w", err)
	}
	return newCount, nil
}

func (s *CacheStorage) Stats() (*models.CacheStats, error) {
	var entries []models.CacheEntry
	if err := s.db.Store().Find(&entries, nil); err != nil {
		return nil, fmt.Errorf("failed to scan cache entries: %w", err)
	}

	stats := &models.CacheStats{
		TotalEntries: len(entries),
	}
	for i := range entries {
		stats.TotalHits += entries[i].HitCount
	}
	if stats.TotalEntries > 0 {
		stats.AvgHitsPerEntry = float64(stats.TotalHits) / float64(stats.TotalEntries)
	}

	return stats, nil
}

func (s *CacheStorage) Clear() (int, error) {
	count, err := s.db.Store().Count(&models.CacheEntry{}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count cache entries: %w", err)
	}

	if err := s.db.Store().DeleteMatching(&models.CacheEntry{}, nil); err != nil {
		return 0, fmt.Errorf("failed to clear cache: %w", err)
	}

	s.logger.Warn().Int("deleted", int(count)).Msg("Semantic cache cleared")
	return int(count), nil
}
