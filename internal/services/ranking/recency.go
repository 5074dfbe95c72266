package ranking

import (
	"time"
)

// Recency tiers by document age in whole days
const (
	freshAgeDays  = 7
	recentAgeDays = 30

	freshScore  = 1.0
	recentScore = 0.7
	staleScore  = 0.5
)

// RecencyScore maps a document's age at the moment of scoring into a
// discrete relevance multiplier:
//
//	age <  7 days  -> 1.0
//	age < 30 days  -> 0.7
//	otherwise      -> 0.5
//
// Boundary ages land on the lower tier. Naive timestamps are treated as
// already being in UTC; no timezone conversion error is raised.
func RecencyScore(createdAt, now time.Time) float64 {
	ageDays := int(now.Sub(createdAt).Hours() / 24)

	switch {
	case ageDays < freshAgeDays:
		return freshScore
	case ageDays < recentAgeDays:
		return recentScore
	default:
		return staleScore
	}
}
