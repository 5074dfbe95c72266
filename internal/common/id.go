package common

import (
	"github.com/google/uuid"
)

// NewDocumentID generates a unique knowledge document ID
// Format: doc_<uuid>
func NewDocumentID() string {
	return "doc_" + uuid.New().String()
}

// NewCacheEntryID generates a unique semantic cache entry ID
// Format: cache_<uuid>
func NewCacheEntryID() string {
	return "cache_" + uuid.New().String()
}
