package interfaces

import (
	"context"

	"github.com/ternarybob/scientia/internal/models"
)

// KeywordService extracts search keywords from a natural-language query.
// Extraction is best-effort: on any LLM or parse failure it falls back to
// naive tokenization, so it never returns an error.
type KeywordService interface {
	Extract(ctx context.Context, query string) models.KeywordResult
}
