package responder

import (
	"context"
	"fmt"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scientia/internal/interfaces"
	"github.com/ternarybob/scientia/internal/models"
)

const systemPrompt = "You are a helpful AI research assistant with expertise in machine learning, AI, and academic research."

const responsePrompt = `You are an AI research assistant. Based on the provided context, answer the user's question accurately and concisely.

Context from knowledge base:
%s

User question: %s

Instructions:
1. Synthesize information from the provided sources
2. Be specific and cite relevant details from the context
3. If the context doesn't fully answer the question, acknowledge limitations
4. Keep the response focused and informative
5. Do not make up information not present in the context
6. IMPORTANT: Respond in the same language as the user's question. If the question is in Korean, respond in Korean. If the question is in English, respond in English.

Response:`

const notFoundEnglish = "I couldn't find relevant information to answer your question. " +
	"Try rephrasing your query or asking about a different topic related to AI and machine learning research."

const notFoundKorean = "질문에 대한 관련 정보를 찾을 수 없습니다. " +
	"질문을 다르게 표현하거나 AI 및 머신러닝 연구와 관련된 다른 주제로 질문해 주세요."

// Context entries are truncated so a handful of long documents cannot
// crowd the prompt window
const contextSnippetLimit = 1000

// Service generates responses from retrieved context via the chat model
type Service struct {
	llm    interfaces.LLMService
	logger arbor.ILogger
}

// NewService creates a new responder service
func NewService(llm interfaces.LLMService, logger arbor.ILogger) interfaces.ResponderService {
	return &Service{
		llm:    llm,
		logger: logger,
	}
}

// GenerateResponse synthesizes an answer from the retrieved documents.
// Knowledge documents come first in the context block; external results are
// appended with continued source numbering. Synthesis failures degrade to an
// apology while keeping the citation list intact.
func (s *Service) GenerateResponse(ctx context.Context, query string, docs []models.ScoredDocument, external []*models.Document) (string, []models.SourceInfo) {
	contextParts := make([]string, 0, len(docs)+len(external))
	sources := make([]models.SourceInfo, 0, len(docs)+len(external))

	for _, doc := range docs {
		contextParts = append(contextParts, formatContextEntry(len(contextParts)+1, doc.SourceType, doc.Content))
		sources = append(sources, models.SourceInfo{
			SourceType:     doc.SourceType,
			Title:          doc.SourceTitle,
			URL:            doc.SourceURL,
			Author:         doc.SourceAuthor,
			RelevanceScore: doc.FinalScore,
		})
	}

	for _, doc := range external {
		contextParts = append(contextParts, formatContextEntry(len(contextParts)+1, doc.SourceType, doc.Content))
		sources = append(sources, models.SourceInfo{
			SourceType:     doc.SourceType,
			Title:          doc.SourceTitle,
			URL:            doc.SourceURL,
			Author:         doc.SourceAuthor,
			RelevanceScore: 0.0,
		})
	}

	if len(contextParts) == 0 {
		return NotFoundResponse(query), []models.SourceInfo{}
	}

	contextBlock := strings.Join(contextParts, "\n\n---\n\n")
	messages := []interfaces.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: fmt.Sprintf(responsePrompt, contextBlock, query)},
	}

	response, err := s.llm.Chat(ctx, messages)
	if err != nil {
		s.logger.Error().Err(err).Msg("Response generation failed")
		return fmt.Sprintf("I encountered an error generating a response: %v", err), sources
	}

	s.logger.Info().
		Int("source_count", len(sources)).
		Msg("Generated response")

	return strings.TrimSpace(response), sources
}

// formatContextEntry renders one numbered context block entry, truncating
// content to the snippet limit
func formatContextEntry(index int, sourceType models.SourceType, content string) string {
	if runes := []rune(content); len(runes) > contextSnippetLimit {
		content = string(runes[:contextSnippetLimit])
	}
	return fmt.Sprintf("[Source %d] (%s)\n%s", index, sourceType, content)
}

// NotFoundResponse returns the fixed no-results message, localized to
// Korean when the query contains Hangul
func NotFoundResponse(query string) string {
	for _, r := range query {
		if r >= '가' && r <= '힣' {
			return notFoundKorean
		}
	}
	return notFoundEnglish
}
