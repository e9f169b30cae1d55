package history

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2022, 3, 14, 10, 42, 17, 0, time.UTC)

func TestStore_OneDayAgo(t *testing.T) {
	s := NewStore()
	s.Record("totalLocked", decimal.NewFromInt(500000), baseTime.Add(-24*time.Hour))

	v, ok := s.OneDayAgo("totalLocked", baseTime)
	require.True(t, ok)
	assert.True(t, v.Equal(decimal.NewFromInt(500000)))
}

func TestStore_BucketsTruncateToHour(t *testing.T) {
	s := NewStore()

	// Recorded at 10:05, looked up at 10:55 the next day: both truncate
	// to the same 10:00 bucket pair.
	recorded := time.Date(2022, 3, 13, 10, 5, 0, 0, time.UTC)
	lookedUp := time.Date(2022, 3, 14, 10, 55, 0, 0, time.UTC)

	s.Record("amountIn", decimal.NewFromInt(10000), recorded)

	v, ok := s.OneDayAgo("amountIn", lookedUp)
	require.True(t, ok)
	assert.True(t, v.Equal(decimal.NewFromInt(10000)))
}

func TestStore_MissingBaseline(t *testing.T) {
	s := NewStore()

	// Never recorded at all.
	_, ok := s.OneDayAgo("receivedAmount", baseTime)
	assert.False(t, ok)

	// Recorded, but not in the target bucket (23h ago, not 24h).
	s.Record("receivedAmount", decimal.NewFromInt(9500), baseTime.Add(-23*time.Hour))
	_, ok = s.OneDayAgo("receivedAmount", baseTime)
	assert.False(t, ok)
}

func TestStore_FirstSampleInBucketWins(t *testing.T) {
	s := NewStore()
	at := baseTime.Add(-24 * time.Hour)

	s.Record("totalLocked", decimal.NewFromInt(100), at)
	s.Record("totalLocked", decimal.NewFromInt(999), at.Add(10*time.Minute))

	v, ok := s.OneDayAgo("totalLocked", baseTime)
	require.True(t, ok)
	assert.True(t, v.Equal(decimal.NewFromInt(100)))
}

func TestStore_MetricsAreIndependent(t *testing.T) {
	s := NewStore()
	at := baseTime.Add(-24 * time.Hour)

	s.Record("totalLocked", decimal.NewFromInt(100), at)

	_, ok := s.OneDayAgo("amountIn", baseTime)
	assert.False(t, ok)
}

func TestPercentChange(t *testing.T) {
	cases := []struct {
		name     string
		previous string
		current  string
		want     string
	}{
		// (current - previous) / current * 100
		{"gain", "90", "120", "+25.00%"},
		{"loss", "120", "100", "-20.00%"},
		{"flat", "100", "100", "+0.00%"},
		{"rounded", "1000000", "1030000", "+2.91%"},
		{"large values stay exact", "900000000000000000000", "1000000000000000000000", "+10.00%"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			prev := decimal.RequireFromString(tc.previous)
			curr := decimal.RequireFromString(tc.current)
			assert.Equal(t, tc.want, PercentChange(prev, curr))
		})
	}
}
