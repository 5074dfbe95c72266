package interfaces

import (
	"context"

	"github.com/ternarybob/scientia/internal/models"
)

// ResponderService synthesizes a natural-language response from retrieved
// context. Synthesis failures degrade to an apologetic message; the citation
// list always reflects what was retrieved, even when wording it failed.
type ResponderService interface {
	// GenerateResponse builds a numbered context block from the knowledge
	// documents (first) and external results (appended with continued
	// numbering) and delegates synthesis to the LLM. If both sets are empty
	// it returns a fixed not-found message localized to the query.
	GenerateResponse(ctx context.Context, query string, docs []models.ScoredDocument, external []*models.Document) (string, []models.SourceInfo)
}
