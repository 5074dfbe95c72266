package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scientia/internal/common"
	"github.com/ternarybob/scientia/internal/interfaces"
	"github.com/ternarybob/scientia/internal/models"
)

// Service implements the semantic cache tier. A lookup embeds the incoming
// query and compares it against stored query embeddings; only the single
// nearest entry is considered, and only when its similarity meets the
// configured threshold.
type Service struct {
	storage             interfaces.CacheStorage
	embeddings          interfaces.EmbeddingService
	similarityThreshold float64
	logger              arbor.ILogger
}

// NewService creates a new semantic cache service
func NewService(storage interfaces.CacheStorage, embeddings interfaces.EmbeddingService, similarityThreshold float64, logger arbor.ILogger) interfaces.CacheService {
	return &Service{
		storage:             storage,
		embeddings:          embeddings,
		similarityThreshold: similarityThreshold,
		logger:              logger,
	}
}

// Search returns the nearest cached entry at or above the similarity
// threshold, or (nil, nil) on a miss
func (s *Service) Search(ctx context.Context, query string) (*models.CacheEntry, error) {
	if query == "" {
		return nil, fmt.Errorf("query cannot be empty")
	}

	embedding, err := s.embeddings.GenerateQueryEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	entry, similarity, err := s.storage.Nearest(embedding)
	if err != nil {
		return nil, fmt.Errorf("cache lookup failed: %w", err)
	}
	if entry == nil || similarity < s.similarityThreshold {
		s.logger.Debug().
			Float64("best_similarity", similarity).
			Float64("threshold", s.similarityThreshold).
			Msg("Cache miss")
		return nil, nil
	}

	newCount, err := s.storage.IncrementHitCount(entry.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to record cache hit: %w", err)
	}

	entry.HitCount = newCount
	entry.Similarity = similarity

	s.logger.Info().
		Str("entry_id", entry.ID).
		Float64("similarity", similarity).
		Int("hit_count", newCount).
		Msg("Cache hit")

	return entry, nil
}

// Store persists a new cache entry for the query/response pair
func (s *Service) Store(ctx context.Context, query, response string, sources []models.SourceInfo) (string, error) {
	if query == "" {
		return "", fmt.Errorf("query cannot be empty")
	}
	if response == "" {
		return "", fmt.Errorf("response cannot be empty")
	}

	embedding, err := s.embeddings.GenerateQueryEmbedding(ctx, query)
	if err != nil {
		return "", fmt.Errorf("failed to embed query: %w", err)
	}

	entry := &models.CacheEntry{
		ID:             common.NewCacheEntryID(),
		QueryText:      query,
		QueryEmbedding: embedding,
		ResponseText:   response,
		Sources:        sources,
		HitCount:       0,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.storage.Insert(entry); err != nil {
		return "", fmt.Errorf("failed to store cache entry: %w", err)
	}

	s.logger.Debug().
		Str("entry_id", entry.ID).
		Int("source_count", len(sources)).
		Msg("Cached response")

	return entry.ID, nil
}

// Stats returns aggregate cache usage counters
func (s *Service) Stats(ctx context.Context) (*models.CacheStats, error) {
	return s.storage.Stats()
}

// Clear removes every cache entry
func (s *Service) Clear(ctx context.Context) (int, error) {
	return s.storage.Clear()
}
