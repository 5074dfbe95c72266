package badger

import (
	"fmt"
	"sort"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scientia/internal/interfaces"
	"github.com/ternarybob/scientia/internal/models"
	"github.com/ternarybob/scientia/internal/services/ranking"
)

// KnowledgeStorage implements the KnowledgeStorage interface for Badger.
// The nearest-neighbor index is a brute-force cosine scan ordered by raw
// similarity descending; callers re-rank with recency weighting on top.
type KnowledgeStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewKnowledgeStorage creates a new KnowledgeStorage instance
func NewKnowledgeStorage(db *BadgerDB, logger arbor.ILogger) interfaces.KnowledgeStorage {
	return &KnowledgeStorage{
		db:     db,
		logger: logger,
	}
}

func (s *KnowledgeStorage) Insert(doc *models.Document) error {
	if doc.ID == "" {
		return fmt.Errorf("document ID is required")
	}
	if len(doc.Embedding) == 0 {
		return fmt.Errorf("document embedding is required")
	}

	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}

	if err := s.db.Store().Insert(doc.ID, doc); err != nil {
		return fmt.Errorf("failed to insert document: %w", err)
	}
	return nil
}

func (s *KnowledgeStorage) QueryNearest(embedding []float32, k int) ([]models.ScoredDocument, error) {
	if k <= 0 {
		return nil, nil
	}

	var docs []models.Document
	if err := s.db.Store().Find(&docs, nil); err != nil {
		return nil, fmt.Errorf("failed to scan documents: %w", err)
	}

	scored := make([]models.ScoredDocument, 0, len(docs))
	for i := range docs {
		scored = append(scored, models.ScoredDocument{
			Document:   docs[i],
			Similarity: ranking.CosineSimilarity(embedding, docs[i].Embedding),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Similarity > scored[j].Similarity
	})

	if len(scored) > k {
		scored = scored[:k]
	}
	return scored, nil
}

func (s *KnowledgeStorage) Count() (int, error) {
	count, err := s.db.Store().Count(&models.Document{}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}
	return int(count), nil
}

func (s *KnowledgeStorage) Clear() (int, error) {
	count, err := s.db.Store().Count(&models.Document{}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}

	if err := s.db.Store().DeleteMatching(&models.Document{}, nil); err != nil {
		return 0, fmt.Errorf("failed to clear knowledge base: %w", err)
	}

	s.logger.Warn().Int("deleted", int(count)).Msg("Knowledge base cleared")
	return int(count), nil
}
