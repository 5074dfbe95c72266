// Package ranking provides the scoring primitives for the retrieval
// cascade: cosine similarity between embedding vectors, the discrete
// recency multiplier, and the hybrid score used to re-rank knowledge
// base search results.
package ranking

import (
	"math"
)

// Hybrid score weights. They sum to 1.0 so the final score stays a convex
// combination of the similarity and recency sub-scores.
const (
	SimilarityWeight = 0.7
	RecencyWeight    = 0.3
)

// CosineSimilarity computes the cosine of the angle between two vectors.
// Range is [-1, 1] in general, practically [0, 1] for normalized text
// embeddings. Returns 0 for mismatched lengths or zero vectors.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// HybridScore combines raw similarity with the recency sub-score:
// similarity * 0.7 + recency * 0.3
func HybridScore(similarity, recency float64) float64 {
	return similarity*SimilarityWeight + recency*RecencyWeight
}
