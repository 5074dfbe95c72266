package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scientia/internal/common"
	"github.com/ternarybob/scientia/internal/interfaces"
)

// ClaudeService provides chat completions using the Anthropic Claude API.
// Claude has no embedding endpoint, so this service is chat-only and is
// always paired with Gemini embeddings by the factory.
type ClaudeService struct {
	config  *common.ClaudeConfig
	logger  arbor.ILogger
	client  anthropic.Client
	timeout time.Duration
}

// convertMessagesToClaude converts []interfaces.Message to Anthropic message
// params, extracting the first system message for the system prompt.
func convertMessagesToClaude(messages []interfaces.Message) ([]anthropic.MessageParam, string, error) {
	if len(messages) == 0 {
		return nil, "", fmt.Errorf("messages cannot be empty")
	}

	params := make([]anthropic.MessageParam, 0, len(messages))
	var systemText string
	for _, msg := range messages {
		switch msg.Role {
		case "system":
			if systemText == "" {
				systemText = msg.Content
			}
		case "assistant":
			params = append(params, anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Content)))
		case "user":
			params = append(params, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
		default:
			return nil, "", fmt.Errorf("unsupported message role '%s'", msg.Role)
		}
	}

	if len(params) == 0 {
		return nil, "", fmt.Errorf("at least one message must have role 'user'")
	}

	return params, systemText, nil
}

// NewClaudeService creates a new Claude LLM service instance
func NewClaudeService(config *common.ClaudeConfig, logger arbor.ILogger) (*ClaudeService, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("Anthropic API key is required (set SCIENTIA_CLAUDE_API_KEY, ANTHROPIC_API_KEY, or claude.api_key in config)")
	}

	timeout, err := time.ParseDuration(config.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid timeout duration '%s': %w", config.Timeout, err)
	}

	client := anthropic.NewClient(option.WithAPIKey(config.APIKey))

	service := &ClaudeService{
		config:  config,
		logger:  logger,
		client:  client,
		timeout: timeout,
	}

	logger.Debug().
		Str("chat_model", config.Model).
		Dur("timeout", timeout).
		Msg("Claude LLM service initialized")

	return service, nil
}

// Embed is not supported by the Anthropic API
func (s *ClaudeService) Embed(ctx context.Context, text string) ([]float32, error) {
	return nil, fmt.Errorf("claude provider does not support embeddings")
}

// EmbedBatch is not supported by the Anthropic API
func (s *ClaudeService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	return nil, fmt.Errorf("claude provider does not support embeddings")
}

// Chat generates a completion response from the conversation history
func (s *ClaudeService) Chat(ctx context.Context, messages []interfaces.Message) (string, error) {
	if len(messages) == 0 {
		return "", fmt.Errorf("messages cannot be empty for chat completion")
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	claudeMessages, systemText, err := convertMessagesToClaude(messages)
	if err != nil {
		return "", fmt.Errorf("failed to convert messages to Claude format: %w", err)
	}

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(s.config.Model),
		MaxTokens:   int64(s.config.MaxTokens),
		Messages:    claudeMessages,
		Temperature: anthropic.Float(float64(s.config.Temperature)),
	}
	if systemText != "" {
		params.System = []anthropic.TextBlockParam{
			{Text: systemText},
		}
	}

	start := time.Now()
	message, err := s.client.Messages.New(timeoutCtx, params)
	if err != nil {
		return "", fmt.Errorf("chat generation failed: %w", err)
	}

	var response strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			response.WriteString(block.Text)
		}
	}

	if response.Len() == 0 {
		return "", fmt.Errorf("no response generated from chat model")
	}

	s.logger.Debug().
		Int("message_count", len(messages)).
		Int("response_length", response.Len()).
		Dur("duration", time.Since(start)).
		Msg("Claude chat completion finished")

	return response.String(), nil
}

// ProviderName returns the provider identifier
func (s *ClaudeService) ProviderName() string {
	return string(common.LLMProviderClaude)
}

// Close releases client resources
func (s *ClaudeService) Close() error {
	return nil
}
