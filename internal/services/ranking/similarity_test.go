package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a    []float32
		b    []float32
		want float64
	}{
		{name: "identical vectors", a: []float32{1, 0, 0}, b: []float32{1, 0, 0}, want: 1.0},
		{name: "orthogonal vectors", a: []float32{1, 0}, b: []float32{0, 1}, want: 0.0},
		{name: "opposite vectors", a: []float32{1, 0}, b: []float32{-1, 0}, want: -1.0},
		{name: "scaled vectors still identical direction", a: []float32{2, 2}, b: []float32{5, 5}, want: 1.0},
		{name: "length mismatch", a: []float32{1, 0}, b: []float32{1, 0, 0}, want: 0.0},
		{name: "zero vector", a: []float32{0, 0}, b: []float32{1, 1}, want: 0.0},
		{name: "empty vectors", a: nil, b: nil, want: 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineSimilarity(tt.a, tt.b)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestHybridScore(t *testing.T) {
	// Weights are fixed at 0.7 similarity / 0.3 recency
	assert.InDelta(t, 1.0, HybridScore(1.0, 1.0), 1e-9)
	assert.InDelta(t, 0.0, HybridScore(0.0, 0.0), 1e-9)
	assert.InDelta(t, 0.815, HybridScore(0.95, 0.5), 1e-9)
	assert.InDelta(t, 0.895, HybridScore(0.85, 1.0), 1e-9)

	// Weights sum to 1.0, so the score is a convex combination
	assert.InDelta(t, 1.0, SimilarityWeight+RecencyWeight, 1e-9)
}

func TestHybridScore_RecencyCanOutrankSimilarity(t *testing.T) {
	// X: higher similarity, stale. Y: lower similarity, fresh.
	scoreX := HybridScore(0.95, 0.5)
	scoreY := HybridScore(0.85, 1.0)
	assert.Greater(t, scoreY, scoreX)
}
