package knowledge

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scientia/internal/common"
	"github.com/ternarybob/scientia/internal/interfaces"
	"github.com/ternarybob/scientia/internal/models"
	"github.com/ternarybob/scientia/internal/services/ranking"
)

// overFetchFactor widens the storage query so that the similarity/recency
// re-rank has candidates to promote beyond the requested limit
const overFetchFactor = 2

// Service implements the knowledge base tier: documents ingested from
// feedback and external search, retrieved by hybrid similarity/recency
// ranking.
type Service struct {
	storage    interfaces.KnowledgeStorage
	embeddings interfaces.EmbeddingService
	logger     arbor.ILogger
}

// NewService creates a new knowledge base service
func NewService(storage interfaces.KnowledgeStorage, embeddings interfaces.EmbeddingService, logger arbor.ILogger) interfaces.KnowledgeService {
	return &Service{
		storage:    storage,
		embeddings: embeddings,
		logger:     logger,
	}
}

// Search embeds the joined keywords and returns up to limit documents
// re-ranked by hybrid score. Candidates below minSimilarity on raw
// similarity are discarded before re-ranking.
func (s *Service) Search(ctx context.Context, keywords []string, limit int, minSimilarity float64) ([]models.ScoredDocument, error) {
	if len(keywords) == 0 {
		return []models.ScoredDocument{}, nil
	}
	if limit <= 0 {
		return []models.ScoredDocument{}, nil
	}

	searchText := strings.Join(keywords, " ")
	embedding, err := s.embeddings.GenerateQueryEmbedding(ctx, searchText)
	if err != nil {
		return nil, fmt.Errorf("failed to embed search keywords: %w", err)
	}

	candidates, err := s.storage.QueryNearest(embedding, limit*overFetchFactor)
	if err != nil {
		return nil, fmt.Errorf("knowledge base query failed: %w", err)
	}

	now := time.Now().UTC()
	results := make([]models.ScoredDocument, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate.Similarity < minSimilarity {
			continue
		}
		candidate.RecencyScore = ranking.RecencyScore(candidate.CreatedAt, now)
		candidate.FinalScore = ranking.HybridScore(candidate.Similarity, candidate.RecencyScore)
		results = append(results, candidate)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].FinalScore > results[j].FinalScore
	})

	if len(results) > limit {
		results = results[:limit]
	}

	s.logger.Debug().
		Strs("keywords", keywords).
		Int("candidates", len(candidates)).
		Int("results", len(results)).
		Msg("Knowledge base search complete")

	return results, nil
}

// Ingest embeds and persists a single document, returning its identifier
func (s *Service) Ingest(ctx context.Context, doc *models.Document) (string, error) {
	if doc == nil {
		return "", fmt.Errorf("document cannot be nil")
	}
	if doc.Content == "" {
		return "", fmt.Errorf("document content cannot be empty")
	}
	if !doc.SourceType.IsValid() {
		return "", fmt.Errorf("invalid source type '%s'", doc.SourceType)
	}

	if doc.ID == "" {
		doc.ID = common.NewDocumentID()
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}

	if len(doc.Embedding) == 0 {
		if err := s.embeddings.EmbedDocument(ctx, doc); err != nil {
			return "", fmt.Errorf("failed to embed document: %w", err)
		}
	}

	if err := s.storage.Insert(doc); err != nil {
		return "", fmt.Errorf("failed to persist document: %w", err)
	}

	s.logger.Info().
		Str("document_id", doc.ID).
		Str("source_type", string(doc.SourceType)).
		Int("content_length", len(doc.Content)).
		Msg("Document ingested")

	return doc.ID, nil
}

// IngestBatch ingests documents sequentially. A failure aborts the batch
// but does not roll back documents already persisted.
func (s *Service) IngestBatch(ctx context.Context, docs []*models.Document) ([]string, error) {
	ids := make([]string, 0, len(docs))
	for i, doc := range docs {
		id, err := s.Ingest(ctx, doc)
		if err != nil {
			return ids, fmt.Errorf("failed to ingest document %d of %d: %w", i+1, len(docs), err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Count returns the total number of stored documents
func (s *Service) Count(ctx context.Context) (int, error) {
	return s.storage.Count()
}
