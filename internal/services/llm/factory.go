package llm

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scientia/internal/common"
	"github.com/ternarybob/scientia/internal/interfaces"
)

// compositeService routes chat to the configured provider while keeping
// Gemini as the embedding backend
type compositeService struct {
	embedder *GeminiService
	chatter  interfaces.LLMService
}

func (s *compositeService) Embed(ctx context.Context, text string) ([]float32, error) {
	return s.embedder.Embed(ctx, text)
}

func (s *compositeService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	return s.embedder.EmbedBatch(ctx, texts)
}

func (s *compositeService) Chat(ctx context.Context, messages []interfaces.Message) (string, error) {
	return s.chatter.Chat(ctx, messages)
}

func (s *compositeService) ProviderName() string {
	return s.chatter.ProviderName()
}

func (s *compositeService) Close() error {
	chatErr := s.chatter.Close()
	if err := s.embedder.Close(); err != nil {
		return err
	}
	return chatErr
}

// NewLLMService creates an LLM service for the configured default provider.
// Embeddings always come from Gemini; only chat completion is switchable.
func NewLLMService(config *common.Config, logger arbor.ILogger) (interfaces.LLMService, error) {
	gemini, err := NewGeminiService(&config.Gemini, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini service: %w", err)
	}

	switch config.LLM.DefaultProvider {
	case common.LLMProviderGemini:
		return gemini, nil
	case common.LLMProviderClaude:
		claude, err := NewClaudeService(&config.Claude, logger)
		if err != nil {
			gemini.Close()
			return nil, fmt.Errorf("failed to create claude service: %w", err)
		}
		logger.Info().
			Str("chat_provider", claude.ProviderName()).
			Str("embed_provider", gemini.ProviderName()).
			Msg("Using composite LLM service")
		return &compositeService{embedder: gemini, chatter: claude}, nil
	default:
		gemini.Close()
		return nil, fmt.Errorf("unknown LLM provider '%s'", config.LLM.DefaultProvider)
	}
}
