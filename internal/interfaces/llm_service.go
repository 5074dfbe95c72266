package interfaces

import (
	"context"
)

// Message represents a single message in a chat conversation
type Message struct {
	// Role identifies the message sender: "user", "assistant", or "system"
	Role string

	// Content contains the text content of the message
	Content string
}

// LLMService defines the interface for language model operations: embedding
// generation and chat completions. Implementations wrap cloud APIs (Gemini,
// Claude); embeddings are always served by the Gemini backend regardless of
// the configured chat provider.
type LLMService interface {
	// Embed generates an embedding vector for the given text. The vector
	// length matches the configured embedding dimension.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts, one vector per
	// input in call order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Chat generates a completion response from the conversation history.
	// The messages slice should contain the full context in chronological
	// order, including system prompts.
	Chat(ctx context.Context, messages []Message) (string, error)

	// ProviderName returns the name of the active chat provider
	ProviderName() string

	// Close releases client resources
	Close() error
}
