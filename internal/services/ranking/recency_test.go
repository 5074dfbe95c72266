package ranking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecencyScore_AgeTiers(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		ageDays int
		want    float64
	}{
		{name: "same day", ageDays: 0, want: 1.0},
		{name: "six days old", ageDays: 6, want: 1.0},
		{name: "seven days lands on lower tier", ageDays: 7, want: 0.7},
		{name: "two weeks old", ageDays: 14, want: 0.7},
		{name: "twenty nine days old", ageDays: 29, want: 0.7},
		{name: "thirty days lands on lower tier", ageDays: 30, want: 0.5},
		{name: "one year old", ageDays: 365, want: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			createdAt := now.AddDate(0, 0, -tt.ageDays)
			got := RecencyScore(createdAt, now)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRecencyScore_PartialDaysTruncate(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	// 6 days and 23 hours is still 6 whole days
	createdAt := now.Add(-(6*24 + 23) * time.Hour)
	assert.Equal(t, 1.0, RecencyScore(createdAt, now))

	// 7 days exactly drops to the recent tier
	createdAt = now.Add(-7 * 24 * time.Hour)
	assert.Equal(t, 0.7, RecencyScore(createdAt, now))
}
