package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scientia/internal/common"
	"github.com/ternarybob/scientia/internal/models"
)

// MockCacheService is a mock implementation of CacheService
type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) Search(ctx context.Context, query string) (*models.CacheEntry, error) {
	args := m.Called(ctx, query)
	if entry, ok := args.Get(0).(*models.CacheEntry); ok {
		return entry, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCacheService) Store(ctx context.Context, query, response string, sources []models.SourceInfo) (string, error) {
	args := m.Called(ctx, query, response, sources)
	return args.String(0), args.Error(1)
}

func (m *MockCacheService) Stats(ctx context.Context) (*models.CacheStats, error) {
	args := m.Called(ctx)
	if stats, ok := args.Get(0).(*models.CacheStats); ok {
		return stats, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCacheService) Clear(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockKnowledgeService is a mock implementation of KnowledgeService
type MockKnowledgeService struct {
	mock.Mock
}

func (m *MockKnowledgeService) Search(ctx context.Context, keywords []string, limit int, minSimilarity float64) ([]models.ScoredDocument, error) {
	args := m.Called(ctx, keywords, limit, minSimilarity)
	if docs, ok := args.Get(0).([]models.ScoredDocument); ok {
		return docs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockKnowledgeService) Ingest(ctx context.Context, doc *models.Document) (string, error) {
	args := m.Called(ctx, doc)
	return args.String(0), args.Error(1)
}

func (m *MockKnowledgeService) IngestBatch(ctx context.Context, docs []*models.Document) ([]string, error) {
	args := m.Called(ctx, docs)
	if ids, ok := args.Get(0).([]string); ok {
		return ids, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockKnowledgeService) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockExternalService is a mock implementation of ExternalSearchService
type MockExternalService struct {
	mock.Mock
}

func (m *MockExternalService) SearchArxiv(ctx context.Context, keywords []string, maxResults int) []*models.Document {
	args := m.Called(ctx, keywords, maxResults)
	return args.Get(0).([]*models.Document)
}

func (m *MockExternalService) SearchHuggingFace(ctx context.Context, keywords []string, maxResults int) []*models.Document {
	args := m.Called(ctx, keywords, maxResults)
	return args.Get(0).([]*models.Document)
}

func (m *MockExternalService) SearchAll(ctx context.Context, keywords []string, maxPerSource int) []*models.Document {
	args := m.Called(ctx, keywords, maxPerSource)
	return args.Get(0).([]*models.Document)
}

func (m *MockExternalService) Close() {
	m.Called()
}

// MockKeywordService is a mock implementation of KeywordService
type MockKeywordService struct {
	mock.Mock
}

func (m *MockKeywordService) Extract(ctx context.Context, query string) models.KeywordResult {
	args := m.Called(ctx, query)
	return args.Get(0).(models.KeywordResult)
}

// MockResponderService is a mock implementation of ResponderService
type MockResponderService struct {
	mock.Mock
}

func (m *MockResponderService) GenerateResponse(ctx context.Context, query string, docs []models.ScoredDocument, external []*models.Document) (string, []models.SourceInfo) {
	args := m.Called(ctx, query, docs, external)
	return args.String(0), args.Get(1).([]models.SourceInfo)
}

type pipelineMocks struct {
	cache     *MockCacheService
	knowledge *MockKnowledgeService
	external  *MockExternalService
	keywords  *MockKeywordService
	responder *MockResponderService
}

func newOrchestratorWithMocks() (*pipelineMocks, *Orchestrator) {
	mocks := &pipelineMocks{
		cache:     new(MockCacheService),
		knowledge: new(MockKnowledgeService),
		external:  new(MockExternalService),
		keywords:  new(MockKeywordService),
		responder: new(MockResponderService),
	}
	config := common.NewDefaultConfig()
	service := NewOrchestrator(mocks.cache, mocks.knowledge, mocks.external, mocks.keywords, mocks.responder, config, arbor.NewLogger())
	return mocks, service.(*Orchestrator)
}

func TestSearch_CacheHitShortCircuits(t *testing.T) {
	mocks, orchestrator := newOrchestratorWithMocks()

	mocks.keywords.On("Extract", mock.Anything, "what is rag").Return(models.KeywordResult{Keywords: []string{"rag"}})
	mocks.cache.On("Search", mock.Anything, "what is rag").Return(&models.CacheEntry{
		ResponseText: "cached answer",
		Sources:      []models.SourceInfo{{SourceType: models.SourceTypeArxivPaper}},
	}, nil)

	result, err := orchestrator.Search(context.Background(), "what is rag")

	require.NoError(t, err)
	assert.Equal(t, models.SearchTierCache, result.Tier)
	assert.Equal(t, "cached answer", result.Response)
	assert.Equal(t, []string{"rag"}, result.Keywords)
	assert.GreaterOrEqual(t, result.ProcessingTimeMs, 0.0)

	// lower tiers are never touched
	mocks.knowledge.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mocks.external.AssertNotCalled(t, "SearchAll", mock.Anything, mock.Anything, mock.Anything)
	mocks.cache.AssertNotCalled(t, "Store", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSearch_KnowledgeHitWritesThroughCache(t *testing.T) {
	mocks, orchestrator := newOrchestratorWithMocks()

	docs := []models.ScoredDocument{{
		Document:   models.Document{ID: "doc_1", Content: "stored knowledge"},
		FinalScore: 0.88,
	}}
	sources := []models.SourceInfo{{SourceType: models.SourceTypeExpertInsight, RelevanceScore: 0.88}}

	mocks.keywords.On("Extract", mock.Anything, "query").Return(models.KeywordResult{Keywords: []string{"kw"}})
	mocks.cache.On("Search", mock.Anything, "query").Return(nil, nil)
	mocks.knowledge.On("Search", mock.Anything, []string{"kw"}, 10, 0.5).Return(docs, nil)
	mocks.responder.On("GenerateResponse", mock.Anything, "query", docs, ([]*models.Document)(nil)).Return("synthesized", sources)
	mocks.cache.On("Store", mock.Anything, "query", "synthesized", sources).Return("cache_new", nil)

	result, err := orchestrator.Search(context.Background(), "query")

	require.NoError(t, err)
	assert.Equal(t, models.SearchTierKnowledge, result.Tier)
	assert.Equal(t, "synthesized", result.Response)
	mocks.cache.AssertExpectations(t)
	mocks.external.AssertNotCalled(t, "SearchAll", mock.Anything, mock.Anything, mock.Anything)
}

func TestSearch_ExternalTierIngestsAndCaches(t *testing.T) {
	mocks, orchestrator := newOrchestratorWithMocks()

	externalDocs := []*models.Document{{Content: "fresh paper", SourceType: models.SourceTypeArxivPaper}}
	sources := []models.SourceInfo{{SourceType: models.SourceTypeArxivPaper}}

	mocks.keywords.On("Extract", mock.Anything, "query").Return(models.KeywordResult{Keywords: []string{"kw"}})
	mocks.cache.On("Search", mock.Anything, "query").Return(nil, nil)
	mocks.knowledge.On("Search", mock.Anything, []string{"kw"}, 10, 0.5).Return([]models.ScoredDocument{}, nil)
	mocks.external.On("SearchAll", mock.Anything, []string{"kw"}, 3).Return(externalDocs)
	mocks.knowledge.On("IngestBatch", mock.Anything, externalDocs).Return([]string{"doc_new"}, nil)
	mocks.responder.On("GenerateResponse", mock.Anything, "query", ([]models.ScoredDocument)(nil), externalDocs).Return("from external", sources)
	mocks.cache.On("Store", mock.Anything, "query", "from external", sources).Return("cache_new", nil)

	result, err := orchestrator.Search(context.Background(), "query")

	require.NoError(t, err)
	assert.Equal(t, models.SearchTierExternal, result.Tier)
	assert.Equal(t, "from external", result.Response)
	mocks.knowledge.AssertCalled(t, "IngestBatch", mock.Anything, externalDocs)
	mocks.cache.AssertExpectations(t)
}

func TestSearch_NotFoundIsNeverCached(t *testing.T) {
	mocks, orchestrator := newOrchestratorWithMocks()

	mocks.keywords.On("Extract", mock.Anything, "obscure query").Return(models.KeywordResult{Keywords: []string{"obscure"}})
	mocks.cache.On("Search", mock.Anything, "obscure query").Return(nil, nil)
	mocks.knowledge.On("Search", mock.Anything, []string{"obscure"}, 10, 0.5).Return([]models.ScoredDocument{}, nil)
	mocks.external.On("SearchAll", mock.Anything, []string{"obscure"}, 3).Return([]*models.Document{})

	result, err := orchestrator.Search(context.Background(), "obscure query")

	require.NoError(t, err)
	assert.Equal(t, models.SearchTierNotFound, result.Tier)
	assert.Contains(t, result.Response, "couldn't find relevant information")
	assert.Empty(t, result.Sources)
	mocks.cache.AssertNotCalled(t, "Store", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mocks.knowledge.AssertNotCalled(t, "IngestBatch", mock.Anything, mock.Anything)
}

func TestSearch_NotFoundLocalizedForKoreanQuery(t *testing.T) {
	mocks, orchestrator := newOrchestratorWithMocks()

	query := "알 수 없는 주제"
	mocks.keywords.On("Extract", mock.Anything, query).Return(models.KeywordResult{Keywords: []string{"주제"}})
	mocks.cache.On("Search", mock.Anything, query).Return(nil, nil)
	mocks.knowledge.On("Search", mock.Anything, []string{"주제"}, 10, 0.5).Return([]models.ScoredDocument{}, nil)
	mocks.external.On("SearchAll", mock.Anything, []string{"주제"}, 3).Return([]*models.Document{})

	result, err := orchestrator.Search(context.Background(), query)

	require.NoError(t, err)
	assert.Equal(t, models.SearchTierNotFound, result.Tier)
	assert.Contains(t, result.Response, "관련 정보를 찾을 수 없습니다")
}

func TestSearch_IngestFailureStillAnswers(t *testing.T) {
	mocks, orchestrator := newOrchestratorWithMocks()

	externalDocs := []*models.Document{{Content: "paper", SourceType: models.SourceTypeArxivPaper}}
	sources := []models.SourceInfo{{SourceType: models.SourceTypeArxivPaper}}

	mocks.keywords.On("Extract", mock.Anything, "query").Return(models.KeywordResult{Keywords: []string{"kw"}})
	mocks.cache.On("Search", mock.Anything, "query").Return(nil, nil)
	mocks.knowledge.On("Search", mock.Anything, []string{"kw"}, 10, 0.5).Return([]models.ScoredDocument{}, nil)
	mocks.external.On("SearchAll", mock.Anything, []string{"kw"}, 3).Return(externalDocs)
	mocks.knowledge.On("IngestBatch", mock.Anything, externalDocs).Return([]string{}, assert.AnError)
	mocks.responder.On("GenerateResponse", mock.Anything, "query", ([]models.ScoredDocument)(nil), externalDocs).Return("answer", sources)
	mocks.cache.On("Store", mock.Anything, "query", "answer", sources).Return("cache_new", nil)

	result, err := orchestrator.Search(context.Background(), "query")

	require.NoError(t, err)
	assert.Equal(t, models.SearchTierExternal, result.Tier)
	assert.Equal(t, "answer", result.Response)
}

func TestSearch_EmptyQueryRejected(t *testing.T) {
	_, orchestrator := newOrchestratorWithMocks()

	result, err := orchestrator.Search(context.Background(), "")

	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestSearch_CacheWriteFailureStillAnswers(t *testing.T) {
	mocks, orchestrator := newOrchestratorWithMocks()

	docs := []models.ScoredDocument{{Document: models.Document{ID: "doc_1"}, FinalScore: 0.9}}
	sources := []models.SourceInfo{{SourceType: models.SourceTypeManual}}

	mocks.keywords.On("Extract", mock.Anything, "query").Return(models.KeywordResult{Keywords: []string{"kw"}})
	mocks.cache.On("Search", mock.Anything, "query").Return(nil, nil)
	mocks.knowledge.On("Search", mock.Anything, []string{"kw"}, 10, 0.5).Return(docs, nil)
	mocks.responder.On("GenerateResponse", mock.Anything, "query", docs, ([]*models.Document)(nil)).Return("answer", sources)
	mocks.cache.On("Store", mock.Anything, "query", "answer", sources).Return("", assert.AnError)

	result, err := orchestrator.Search(context.Background(), "query")

	require.NoError(t, err)
	assert.Equal(t, models.SearchTierKnowledge, result.Tier)
}
