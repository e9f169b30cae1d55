package upstream

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/usemate/statsbot/internal/cache"
)

// ExchangeStats is the payload of the exchange-stats endpoint. The
// endpoint reports current values only; 24h deltas for these metrics are
// derived via the hourly snapshot store.
type ExchangeStats struct {
	TotalLocked    decimal.Decimal `json:"totalLocked"`
	AmountIn       decimal.Decimal `json:"amountIn"`
	ReceivedAmount decimal.Decimal `json:"receivedAmount"`
}

// StatsClient fetches exchange-wide totals over HTTP through the TTL
// request cache.
type StatsClient struct {
	url    string
	client httpDoer
	cache  *cache.RequestCache
}

// NewStatsClient builds a StatsClient for the given endpoint. A nil
// httpClient falls back to a default with a request timeout.
func NewStatsClient(url string, httpClient *http.Client, c *cache.RequestCache) *StatsClient {
	if httpClient == nil {
		httpClient = defaultHTTPClient()
	}
	return &StatsClient{url: url, client: httpClient, cache: c}
}

// Stats returns the current exchange totals, served from cache when
// fresh.
func (s *StatsClient) Stats(ctx context.Context) (ExchangeStats, error) {
	return cache.Memoize(ctx, s.cache, cache.Key(s.url, nil), func(ctx context.Context) (ExchangeStats, error) {
		var stats ExchangeStats
		if err := getJSON(ctx, s.client, s.url, &stats); err != nil {
			return ExchangeStats{}, err
		}
		return stats, nil
	})
}
