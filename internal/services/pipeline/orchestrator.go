package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scientia/internal/common"
	"github.com/ternarybob/scientia/internal/interfaces"
	"github.com/ternarybob/scientia/internal/models"
	"github.com/ternarybob/scientia/internal/services/responder"
)

// Orchestrator drives the tiered retrieval cascade: semantic cache, then
// knowledge base, then external search. Lower tiers write back through the
// cache; external results are also ingested into the knowledge base so the
// system answers repeat questions locally.
type Orchestrator struct {
	cache        interfaces.CacheService
	knowledge    interfaces.KnowledgeService
	external     interfaces.ExternalSearchService
	keywords     interfaces.KeywordService
	responder    interfaces.ResponderService
	search       *common.SearchConfig
	maxPerSource int
	logger       arbor.ILogger
}

// NewOrchestrator creates the pipeline service
func NewOrchestrator(
	cache interfaces.CacheService,
	knowledge interfaces.KnowledgeService,
	external interfaces.ExternalSearchService,
	keywords interfaces.KeywordService,
	responderSvc interfaces.ResponderService,
	config *common.Config,
	logger arbor.ILogger,
) interfaces.PipelineService {
	return &Orchestrator{
		cache:        cache,
		knowledge:    knowledge,
		external:     external,
		keywords:     keywords,
		responder:    responderSvc,
		search:       &config.Search,
		maxPerSource: config.External.MaxResultsPerQuery,
		logger:       logger,
	}
}

// Search runs the query through the cascade and returns the first tier
// that produced an answer
func (o *Orchestrator) Search(ctx context.Context, query string) (*models.SearchResult, error) {
	if query == "" {
		return nil, fmt.Errorf("query cannot be empty")
	}

	start := time.Now()

	// Keywords drive the knowledge base and external tiers; extraction is
	// done up front so every result carries them
	keywordResult := o.keywords.Extract(ctx, query)
	keywords := keywordResult.Keywords

	// Tier 1: semantic cache
	o.logger.Info().Str("query", truncateQuery(query)).Msg("Tier 1: checking semantic cache")
	cached, err := o.cache.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("cache tier failed: %w", err)
	}
	if cached != nil {
		return o.result(query, cached.ResponseText, cached.Sources, models.SearchTierCache, keywords, start), nil
	}

	// Tier 2: knowledge base
	o.logger.Info().Strs("keywords", keywords).Msg("Tier 2: searching knowledge base")
	docs, err := o.knowledge.Search(ctx, keywords, o.search.Limit, o.search.MinSimilarity)
	if err != nil {
		return nil, fmt.Errorf("knowledge tier failed: %w", err)
	}
	if len(docs) > 0 {
		response, sources := o.responder.GenerateResponse(ctx, query, docs, nil)
		o.writeThrough(ctx, query, response, sources)
		return o.result(query, response, sources, models.SearchTierKnowledge, keywords, start), nil
	}

	// Tier 3: external search with self-learning ingest
	o.logger.Info().Strs("keywords", keywords).Msg("Tier 3: searching external sources")
	externalDocs := o.external.SearchAll(ctx, keywords, o.maxPerSource)
	if len(externalDocs) > 0 {
		if _, err := o.knowledge.IngestBatch(ctx, externalDocs); err != nil {
			// the answer can still be served from the fetched documents
			o.logger.Error().Err(err).Msg("Self-learning ingest failed")
		} else {
			o.logger.Info().Int("ingested", len(externalDocs)).Msg("Self-learning: ingested external results")
		}

		response, sources := o.responder.GenerateResponse(ctx, query, nil, externalDocs)
		o.writeThrough(ctx, query, response, sources)
		return o.result(query, response, sources, models.SearchTierExternal, keywords, start), nil
	}

	// Nothing found anywhere. Not-found responses are never cached.
	return o.result(query, responder.NotFoundResponse(query), []models.SourceInfo{}, models.SearchTierNotFound, keywords, start), nil
}

// writeThrough caches a synthesized response for future queries. Cache
// write failures do not fail the search.
func (o *Orchestrator) writeThrough(ctx context.Context, query, response string, sources []models.SourceInfo) {
	if _, err := o.cache.Store(ctx, query, response, sources); err != nil {
		o.logger.Error().Err(err).Msg("Failed to cache response")
	}
}

func (o *Orchestrator) result(query, response string, sources []models.SourceInfo, tier models.SearchTier, keywords []string, start time.Time) *models.SearchResult {
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0

	o.logger.Info().
		Str("tier", string(tier)).
		Float64("processing_time_ms", elapsed).
		Int("source_count", len(sources)).
		Msg("Search complete")

	return &models.SearchResult{
		Query:            query,
		Response:         response,
		Sources:          sources,
		Tier:             tier,
		ProcessingTimeMs: elapsed,
		Keywords:         keywords,
	}
}

// truncateQuery keeps log lines short for long queries
func truncateQuery(query string) string {
	if runes := []rune(query); len(runes) > 50 {
		return string(runes[:50]) + "..."
	}
	return query
}
