package history

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/usemate/statsbot/internal/domain/models"
)

// Store is an append-only log of hourly metric samples. It exists for
// metrics whose upstream source reports only a current value: the
// aggregator records each observation here and looks 24 hours back to
// compute a percentage change.
//
// Samples accumulate for the lifetime of the process; nothing is ever
// deleted. Recording the same metric twice within one hour bucket keeps
// both samples, and lookups return the first one recorded.
type Store struct {
	mu      sync.Mutex
	samples []models.MetricSample
}

// NewStore builds an empty Store.
func NewStore() *Store {
	return &Store{}
}

// Record appends a sample for metricKey, bucketed to the start of the
// hour containing atTime.
func (s *Store) Record(metricKey string, value decimal.Decimal, atTime time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.samples = append(s.samples, models.MetricSample{
		MetricKey:  metricKey,
		HourBucket: atTime.Truncate(time.Hour),
		Value:      value,
	})
}

// OneDayAgo returns the value of the first sample recorded for
// metricKey in the hour bucket exactly 24 hours before atTime's bucket.
// The second return is false when no such sample exists, e.g. during
// the first 24 hours of uptime or for an hour with no recorded sample.
func (s *Store) OneDayAgo(metricKey string, atTime time.Time) (decimal.Decimal, bool) {
	target := atTime.Truncate(time.Hour).Add(-24 * time.Hour)

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sample := range s.samples {
		if sample.MetricKey == metricKey && sample.HourBucket.Equal(target) {
			return sample.Value, true
		}
	}
	return decimal.Decimal{}, false
}

// PercentChange formats the relative change from previous to current as
// a signed percentage with two decimal places: (current - previous) /
// current * 100. Non-negative results carry an explicit leading "+".
//
// Decimal arithmetic avoids float rounding artifacts on large monetary
// values.
func PercentChange(previous, current decimal.Decimal) string {
	result := current.Sub(previous).
		Div(current).
		Mul(decimal.NewFromInt(100)).
		Round(2)

	prefix := ""
	if result.GreaterThanOrEqual(decimal.Zero) {
		prefix = "+"
	}
	return prefix + result.StringFixed(2) + "%"
}
