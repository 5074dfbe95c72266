package keywords

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scientia/internal/interfaces"
	"github.com/ternarybob/scientia/internal/models"
)

const extractionPrompt = `Extract technical keywords from the following query for searching a knowledge base about AI, machine learning, and research papers.

Rules:
1. Extract 3-7 specific technical keywords or phrases
2. Convert abstract concepts to technical terms (e.g., "AI trends" -> "large language models", "transformers", "AI")
3. Keep keywords concise but specific
4. Include relevant acronyms if applicable (e.g., "LLM", "RAG", "NLP")
5. Identify if the query is asking about: expert_insight, arxiv_paper, huggingface, or general

Query: %s

Respond in JSON format:
{
    "keywords": ["keyword1", "keyword2", ...],
    "source_type_hint": "expert_insight" | "arxiv_paper" | "huggingface" | null
}`

const fallbackKeywordLimit = 5

// extractionResponse is the JSON shape the extraction prompt requests
type extractionResponse struct {
	Keywords       []string `json:"keywords"`
	SourceTypeHint string   `json:"source_type_hint"`
}

// Service extracts search keywords from natural-language queries via the
// chat model, degrading to naive tokenization when the model misbehaves
type Service struct {
	llm    interfaces.LLMService
	logger arbor.ILogger
}

// NewService creates a new keyword extraction service
func NewService(llm interfaces.LLMService, logger arbor.ILogger) interfaces.KeywordService {
	return &Service{
		llm:    llm,
		logger: logger,
	}
}

// Extract returns keywords for the query. Never fails: any LLM or parse
// error falls back to splitting the query into words.
func (s *Service) Extract(ctx context.Context, query string) models.KeywordResult {
	messages := []interfaces.Message{
		{Role: "system", Content: "You are a keyword extraction assistant. Always respond with valid JSON."},
		{Role: "user", Content: fmt.Sprintf(extractionPrompt, query)},
	}

	response, err := s.llm.Chat(ctx, messages)
	if err != nil {
		s.logger.Error().Err(err).Msg("Keyword extraction failed, using fallback tokenizer")
		return fallbackExtract(query)
	}

	var parsed extractionResponse
	if err := json.Unmarshal([]byte(stripMarkdownFence(response)), &parsed); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to parse keyword extraction response, using fallback tokenizer")
		return fallbackExtract(query)
	}

	result := models.KeywordResult{
		Keywords:       parsed.Keywords,
		SourceTypeHint: mapSourceHint(parsed.SourceTypeHint),
	}

	s.logger.Info().
		Strs("keywords", result.Keywords).
		Msg("Extracted keywords")

	return result
}

// stripMarkdownFence removes a surrounding ```json ... ``` code block if
// the model wrapped its response in one
func stripMarkdownFence(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}

	parts := strings.SplitN(content, "```", 3)
	if len(parts) < 2 {
		return content
	}

	inner := parts[1]
	inner = strings.TrimPrefix(inner, "json")
	return strings.TrimSpace(inner)
}

// mapSourceHint maps the model's hint string onto a known source type.
// Unknown hints (including "general" and null) yield no hint.
func mapSourceHint(hint string) models.SourceType {
	switch models.SourceType(hint) {
	case models.SourceTypeExpertInsight:
		return models.SourceTypeExpertInsight
	case models.SourceTypeArxivPaper:
		return models.SourceTypeArxivPaper
	case models.SourceTypeHuggingFace:
		return models.SourceTypeHuggingFace
	}
	return ""
}

// fallbackExtract tokenizes the query directly: lowercase words longer
// than two characters, capped at five
func fallbackExtract(query string) models.KeywordResult {
	words := strings.Fields(strings.ToLower(query))
	keywords := make([]string, 0, fallbackKeywordLimit)
	for _, word := range words {
		if len(word) > 2 {
			keywords = append(keywords, word)
			if len(keywords) == fallbackKeywordLimit {
				break
			}
		}
	}
	return models.KeywordResult{Keywords: keywords}
}
