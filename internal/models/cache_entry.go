package models

import (
	"time"
)

// CacheEntry is a previously synthesized (query, response) pair stored in
// the semantic cache. HitCount is incremented atomically on every cache
// hit; entries are otherwise immutable and removed only by bulk clear.
type CacheEntry struct {
	// Identity
	ID string `json:"id"` // cache_{uuid}

	// Query
	QueryText      string    `json:"query_text"`
	QueryEmbedding []float32 `json:"query_embedding,omitempty"`

	// Synthesized response and its citations
	ResponseText string       `json:"response_text"`
	Sources      []SourceInfo `json:"sources,omitempty"`

	// Usage tracking
	HitCount int `json:"hit_count"`

	// Similarity to the query that retrieved this entry.
	// Populated on retrieval only; never persisted.
	Similarity float64 `json:"similarity,omitempty"`

	// Timestamps
	CreatedAt time.Time `json:"created_at"`
}

// CacheStats summarizes semantic cache usage
type CacheStats struct {
	TotalEntries    int     `json:"total_entries"`
	TotalHits       int     `json:"total_hits"`
	AvgHitsPerEntry float64 `json:"avg_hits_per_entry"`
}
