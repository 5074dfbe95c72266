package cache

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scientia/internal/models"
)

// MockCacheStorage is a mock implementation of CacheStorage
type MockCacheStorage struct {
	mock.Mock
}

func (m *MockCacheStorage) Insert(entry *models.CacheEntry) error {
	args := m.Called(entry)
	return args.Error(0)
}

func (m *MockCacheStorage) Nearest(embedding []float32) (*models.CacheEntry, float64, error) {
	args := m.Called(embedding)
	if entry, ok := args.Get(0).(*models.CacheEntry); ok {
		return entry, args.Get(1).(float64), args.Error(2)
	}
	return nil, args.Get(1).(float64), args.Error(2)
}

func (m *MockCacheStorage) IncrementHitCount(id string) (int, error) {
	args := m.Called(id)
	return args.Int(0), args.Error(1)
}

func (m *MockCacheStorage) Stats() (*models.CacheStats, error) {
	args := m.Called()
	if stats, ok := args.Get(0).(*models.CacheStats); ok {
		return stats, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCacheStorage) Clear() (int, error) {
	args := m.Called()
	return args.Int(0), args.Error(1)
}

// MockEmbeddingService is a mock implementation of EmbeddingService
type MockEmbeddingService struct {
	mock.Mock
}

func (m *MockEmbeddingService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	args := m.Called(ctx, text)
	if emb, ok := args.Get(0).([]float32); ok {
		return emb, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockEmbeddingService) EmbedDocument(ctx context.Context, doc *models.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockEmbeddingService) GenerateQueryEmbedding(ctx context.Context, query string) ([]float32, error) {
	args := m.Called(ctx, query)
	if emb, ok := args.Get(0).([]float32); ok {
		return emb, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockEmbeddingService) Dimension() int {
	args := m.Called()
	return args.Int(0)
}

func TestSearch_HitIncrementsCounter(t *testing.T) {
	mockStorage := new(MockCacheStorage)
	mockEmbeddings := new(MockEmbeddingService)
	logger := arbor.NewLogger()

	embedding := []float32{0.1, 0.2, 0.3}
	stored := &models.CacheEntry{
		ID:           "cache_abc",
		QueryText:    "what is transfer learning",
		ResponseText: "Transfer learning reuses a pretrained model.",
		HitCount:     4,
	}

	mockEmbeddings.On("GenerateQueryEmbedding", mock.Anything, "what is transfer learning?").Return(embedding, nil)
	mockStorage.On("Nearest", embedding).Return(stored, 0.97, nil)
	mockStorage.On("IncrementHitCount", "cache_abc").Return(5, nil)

	service := NewService(mockStorage, mockEmbeddings, 0.95, logger)
	entry, err := service.Search(context.Background(), "what is transfer learning?")

	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "cache_abc", entry.ID)
	assert.Equal(t, 5, entry.HitCount)
	assert.InDelta(t, 0.97, entry.Similarity, 1e-9)
	mockStorage.AssertExpectations(t)
	mockEmbeddings.AssertExpectations(t)
}

func TestSearch_BelowThresholdIsMissNotError(t *testing.T) {
	mockStorage := new(MockCacheStorage)
	mockEmbeddings := new(MockEmbeddingService)
	logger := arbor.NewLogger()

	embedding := []float32{0.1, 0.2, 0.3}
	stored := &models.CacheEntry{ID: "cache_abc", QueryText: "unrelated"}

	mockEmbeddings.On("GenerateQueryEmbedding", mock.Anything, "quantum error correction").Return(embedding, nil)
	mockStorage.On("Nearest", embedding).Return(stored, 0.80, nil)

	service := NewService(mockStorage, mockEmbeddings, 0.95, logger)
	entry, err := service.Search(context.Background(), "quantum error correction")

	require.NoError(t, err)
	assert.Nil(t, entry)
	mockStorage.AssertNotCalled(t, "IncrementHitCount", mock.Anything)
}

func TestSearch_EmptyCacheIsMiss(t *testing.T) {
	mockStorage := new(MockCacheStorage)
	mockEmbeddings := new(MockEmbeddingService)
	logger := arbor.NewLogger()

	embedding := []float32{0.5, 0.5}
	mockEmbeddings.On("GenerateQueryEmbedding", mock.Anything, "anything").Return(embedding, nil)
	mockStorage.On("Nearest", embedding).Return(nil, 0.0, nil)

	service := NewService(mockStorage, mockEmbeddings, 0.95, logger)
	entry, err := service.Search(context.Background(), "anything")

	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestSearch_ExactThresholdIsHit(t *testing.T) {
	mockStorage := new(MockCacheStorage)
	mockEmbeddings := new(MockEmbeddingService)
	logger := arbor.NewLogger()

	embedding := []float32{0.5, 0.5}
	stored := &models.CacheEntry{ID: "cache_edge"}

	mockEmbeddings.On("GenerateQueryEmbedding", mock.Anything, "edge case").Return(embedding, nil)
	mockStorage.On("Nearest", embedding).Return(stored, 0.95, nil)
	mockStorage.On("IncrementHitCount", "cache_edge").Return(1, nil)

	service := NewService(mockStorage, mockEmbeddings, 0.95, logger)
	entry, err := service.Search(context.Background(), "edge case")

	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, 1, entry.HitCount)
}

func TestSearch_EmbeddingFailurePropagates(t *testing.T) {
	mockStorage := new(MockCacheStorage)
	mockEmbeddings := new(MockEmbeddingService)
	logger := arbor.NewLogger()

	mockEmbeddings.On("GenerateQueryEmbedding", mock.Anything, "broken").Return(nil, fmt.Errorf("api unavailable"))

	service := NewService(mockStorage, mockEmbeddings, 0.95, logger)
	entry, err := service.Search(context.Background(), "broken")

	assert.Error(t, err)
	assert.Nil(t, entry)
	mockStorage.AssertNotCalled(t, "Nearest", mock.Anything)
}

func TestStore_GeneratesIDAndPersists(t *testing.T) {
	mockStorage := new(MockCacheStorage)
	mockEmbeddings := new(MockEmbeddingService)
	logger := arbor.NewLogger()

	embedding := []float32{0.2, 0.4}
	sources := []models.SourceInfo{{SourceType: models.SourceTypeArxivPaper, Title: "Attention Is All You Need"}}

	mockEmbeddings.On("GenerateQueryEmbedding", mock.Anything, "what are transformers").Return(embedding, nil)
	mockStorage.On("Insert", mock.MatchedBy(func(entry *models.CacheEntry) bool {
		return entry.QueryText == "what are transformers" &&
			entry.ResponseText == "Transformers are attention-based models." &&
			entry.HitCount == 0 &&
			len(entry.Sources) == 1
	})).Return(nil)

	service := NewService(mockStorage, mockEmbeddings, 0.95, logger)
	id, err := service.Store(context.Background(), "what are transformers", "Transformers are attention-based models.", sources)

	require.NoError(t, err)
	assert.Contains(t, id, "cache_")
	mockStorage.AssertExpectations(t)
}

func TestStore_RejectsEmptyInput(t *testing.T) {
	service := NewService(new(MockCacheStorage), new(MockEmbeddingService), 0.95, arbor.NewLogger())

	_, err := service.Store(context.Background(), "", "response", nil)
	assert.Error(t, err)

	_, err = service.Store(context.Background(), "query", "", nil)
	assert.Error(t, err)
}

func TestStats_Delegates(t *testing.T) {
	mockStorage := new(MockCacheStorage)
	mockStorage.On("Stats").Return(&models.CacheStats{TotalEntries: 3, TotalHits: 12, AvgHitsPerEntry: 4.0}, nil)

	service := NewService(mockStorage, new(MockEmbeddingService), 0.95, arbor.NewLogger())
	stats, err := service.Stats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalEntries)
	assert.Equal(t, 12, stats.TotalHits)
	assert.InDelta(t, 4.0, stats.AvgHitsPerEntry, 1e-9)
}

func TestClear_ReturnsDeletedCount(t *testing.T) {
	mockStorage := new(MockCacheStorage)
	mockStorage.On("Clear").Return(7, nil)

	service := NewService(mockStorage, new(MockEmbeddingService), 0.95, arbor.NewLogger())
	deleted, err := service.Clear(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 7, deleted)
}
