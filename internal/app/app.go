package app

import (
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scientia/internal/common"
	"github.com/ternarybob/scientia/internal/handlers"
	"github.com/ternarybob/scientia/internal/interfaces"
	"github.com/ternarybob/scientia/internal/services/cache"
	"github.com/ternarybob/scientia/internal/services/embeddings"
	"github.com/ternarybob/scientia/internal/services/external"
	"github.com/ternarybob/scientia/internal/services/keywords"
	"github.com/ternarybob/scientia/internal/services/knowledge"
	"github.com/ternarybob/scientia/internal/services/llm"
	"github.com/ternarybob/scientia/internal/services/pipeline"
	"github.com/ternarybob/scientia/internal/services/responder"
	"github.com/ternarybob/scientia/internal/storage/badger"
)

// App holds all application components and dependencies
type App struct {
	Config         *common.Config
	Logger         arbor.ILogger
	StorageManager interfaces.StorageManager

	// Core services
	LLMService       interfaces.LLMService
	EmbeddingService interfaces.EmbeddingService
	CacheService     interfaces.CacheService
	KnowledgeService interfaces.KnowledgeService
	ExternalService  interfaces.ExternalSearchService
	KeywordService   interfaces.KeywordService
	ResponderService interfaces.ResponderService
	PipelineService  interfaces.PipelineService

	// HTTP handlers
	SearchHandler *handlers.SearchHandler
	IngestHandler *handlers.IngestHandler
	CacheHandler  *handlers.CacheHandler
	StatusHandler *handlers.StatusHandler
}

// New creates the application, wiring storage, services and handlers
func New(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	a := &App{
		Config: cfg,
		Logger: logger,
	}

	if err := a.initStorage(); err != nil {
		return nil, err
	}

	if err := a.initServices(); err != nil {
		a.Close()
		return nil, err
	}

	a.initHandlers()

	logger.Info().Msg("Application initialized")
	return a, nil
}

func (a *App) initStorage() error {
	manager, err := badger.NewManager(a.Logger, &a.Config.Storage.Badger)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	a.StorageManager = manager
	return nil
}

func (a *App) initServices() error {
	llmService, err := llm.NewLLMService(a.Config, a.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize LLM service: %w", err)
	}
	a.LLMService = llmService

	a.EmbeddingService = embeddings.NewService(llmService, a.Config.Gemini.EmbedDimension, a.Logger)

	a.CacheService = cache.NewService(
		a.StorageManager.CacheStorage(),
		a.EmbeddingService,
		a.Config.Cache.SimilarityThreshold,
		a.Logger,
	)

	a.KnowledgeService = knowledge.NewService(
		a.StorageManager.KnowledgeStorage(),
		a.EmbeddingService,
		a.Logger,
	)

	externalService, err := external.NewService(&a.Config.External, a.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize external search service: %w", err)
	}
	a.ExternalService = externalService

	a.KeywordService = keywords.NewService(llmService, a.Logger)
	a.ResponderService = responder.NewService(llmService, a.Logger)

	a.PipelineService = pipeline.NewOrchestrator(
		a.CacheService,
		a.KnowledgeService,
		a.ExternalService,
		a.KeywordService,
		a.ResponderService,
		a.Config,
		a.Logger,
	)

	return nil
}

func (a *App) initHandlers() {
	a.SearchHandler = handlers.NewSearchHandler(a.PipelineService, a.Logger)
	a.IngestHandler = handlers.NewIngestHandler(a.KnowledgeService, a.Logger)
	a.CacheHandler = handlers.NewCacheHandler(a.CacheService, a.Logger)
	a.StatusHandler = handlers.NewStatusHandler(a.CacheService, a.KnowledgeService, a.Logger)
}

// Close releases application resources in reverse initialization order
func (a *App) Close() error {
	if a.ExternalService != nil {
		a.ExternalService.Close()
	}

	if a.LLMService != nil {
		if err := a.LLMService.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close LLM service")
		} else {
			a.Logger.Info().Msg("LLM service closed")
		}
	}

	if a.StorageManager != nil {
		if err := a.StorageManager.Close(); err != nil {
			return fmt.Errorf("failed to close storage: %w", err)
		}
		a.Logger.Info().Msg("Storage closed")
	}

	return nil
}
