package models

// SearchTier indicates which tier of the retrieval cascade resolved a query
type SearchTier string

const (
	SearchTierCache     SearchTier = "cache"
	SearchTierKnowledge SearchTier = "knowledge_base"
	SearchTierExternal  SearchTier = "external"
	SearchTierNotFound  SearchTier = "not_found"
)

// SourceInfo is a lightweight citation projection of a document or external
// search result. Constructed fresh per response; embedded inside cache
// entries as serialized data, never persisted as its own entity.
type SourceInfo struct {
	SourceType     SourceType `json:"source_type"`
	Title          string     `json:"title,omitempty"`
	URL            string     `json:"url,omitempty"`
	Author         string     `json:"author,omitempty"`
	RelevanceScore float64    `json:"relevance_score"`
}

// SearchResult is the envelope returned by one pipeline invocation
type SearchResult struct {
	Query            string       `json:"query"`
	Response         string       `json:"response"`
	Sources          []SourceInfo `json:"sources"`
	Tier             SearchTier   `json:"tier"`
	ProcessingTimeMs float64      `json:"processing_time_ms"`
	Keywords         []string     `json:"keywords"`
}

// KeywordResult holds keywords extracted from a raw query, plus an optional
// hint about which source type the query is asking about
type KeywordResult struct {
	Keywords       []string   `json:"keywords"`
	SourceTypeHint SourceType `json:"source_type_hint,omitempty"`
}
