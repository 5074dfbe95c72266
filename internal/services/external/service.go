package external

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scientia/internal/common"
	"github.com/ternarybob/scientia/internal/httpclient"
	"github.com/ternarybob/scientia/internal/interfaces"
	"github.com/ternarybob/scientia/internal/models"
	"golang.org/x/time/rate"
)

// Service implements external document search against arXiv and the
// HuggingFace Hub. Every failure path degrades to an empty result list;
// the pipeline treats external search as best-effort.
type Service struct {
	config       *common.ExternalConfig
	client       *http.Client
	arxivLimiter *rate.Limiter
	logger       arbor.ILogger
	closeOnce    sync.Once
}

// NewService creates a new external search service
func NewService(config *common.ExternalConfig, logger arbor.ILogger) (*Service, error) {
	timeout, err := time.ParseDuration(config.RequestTimeout)
	if err != nil {
		timeout = 30 * time.Second
		logger.Warn().
			Str("request_timeout", config.RequestTimeout).
			Msg("Invalid request timeout, using 30s")
	}

	// arXiv asks clients to keep at least a few seconds between requests
	arxivInterval, err := time.ParseDuration(config.ArxivRateLimit)
	if err != nil || arxivInterval <= 0 {
		arxivInterval = 3 * time.Second
	}

	return &Service{
		config:       config,
		client:       httpclient.NewDefaultHTTPClient(timeout),
		arxivLimiter: rate.NewLimiter(rate.Every(arxivInterval), 1),
		logger:       logger,
	}, nil
}

var _ interfaces.ExternalSearchService = (*Service)(nil)

// SearchAll queries both providers and concatenates their results, arXiv
// first. Per-provider failures leave the other provider's results intact.
func (s *Service) SearchAll(ctx context.Context, keywords []string, maxPerSource int) []*models.Document {
	results := make([]*models.Document, 0, 2*maxPerSource)
	results = append(results, s.SearchArxiv(ctx, keywords, maxPerSource)...)
	results = append(results, s.SearchHuggingFace(ctx, keywords, maxPerSource)...)

	s.logger.Info().
		Strs("keywords", keywords).
		Int("total_results", len(results)).
		Msg("Combined external search complete")

	return results
}

// Close releases idle network connections; idempotent
func (s *Service) Close() {
	s.closeOnce.Do(func() {
		s.client.CloseIdleConnections()
	})
}
