package models

import (
	"time"
)

// SourceType classifies where a knowledge document came from
type SourceType string

const (
	SourceTypeExpertInsight SourceType = "expert_insight"
	SourceTypeArxivPaper    SourceType = "arxiv_paper"
	SourceTypeHuggingFace   SourceType = "huggingface"
	SourceTypeManual        SourceType = "manual"
)

// IsValid reports whether the source type is one of the known values
func (s SourceType) IsValid() bool {
	switch s {
	case SourceTypeExpertInsight, SourceTypeArxivPaper, SourceTypeHuggingFace, SourceTypeManual:
		return true
	}
	return false
}

// Document represents a knowledge base entry. Content is immutable after
// ingestion; documents are only removed by bulk administrative clear.
type Document struct {
	// Identity
	ID string `json:"id"` // doc_{uuid}

	// Content
	Content    string     `json:"content"`
	SourceType SourceType `json:"source_type"`

	// Origin (optional)
	SourceURL    string `json:"source_url,omitempty"`
	SourceTitle  string `json:"source_title,omitempty"`
	SourceAuthor string `json:"source_author,omitempty"`

	// Provider-specific annotations, serialized as JSON at the storage boundary
	Metadata Metadata `json:"metadata,omitempty"`

	// Dense embedding of Content
	Embedding []float32 `json:"embedding,omitempty"`

	// Timestamps
	CreatedAt time.Time `json:"created_at"`
}

// ScoredDocument is a Document annotated with retrieval scores.
// Produced by knowledge base search; never persisted.
type ScoredDocument struct {
	Document

	Similarity   float64 `json:"similarity"`
	RecencyScore float64 `json:"recency_score"`
	FinalScore   float64 `json:"final_score"`
}
