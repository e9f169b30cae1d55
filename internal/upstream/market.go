package upstream

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/usemate/statsbot/internal/cache"
)

// MarketQuote is the payload of the price/market-data endpoint: current
// price and market cap plus their 24h percentage changes. The changes
// come pre-computed upstream, so these two metrics never touch the
// hourly snapshot store.
type MarketQuote struct {
	Price              decimal.Decimal `json:"price"`
	MarketCap          decimal.Decimal `json:"marketCap"`
	PriceChange24h     decimal.Decimal `json:"priceChange24h"`
	MarketCapChange24h decimal.Decimal `json:"marketCapChange24h"`
}

// MarketClient fetches token market data over HTTP through the TTL
// request cache.
type MarketClient struct {
	url    string
	client httpDoer
	cache  *cache.RequestCache
}

// NewMarketClient builds a MarketClient for the given endpoint. A nil
// httpClient falls back to a default with a request timeout.
func NewMarketClient(url string, httpClient *http.Client, c *cache.RequestCache) *MarketClient {
	if httpClient == nil {
		httpClient = defaultHTTPClient()
	}
	return &MarketClient{url: url, client: httpClient, cache: c}
}

// Quote returns the current market quote, served from cache when fresh.
func (m *MarketClient) Quote(ctx context.Context) (MarketQuote, error) {
	return cache.Memoize(ctx, m.cache, cache.Key(m.url, nil), func(ctx context.Context) (MarketQuote, error) {
		var quote MarketQuote
		if err := getJSON(ctx, m.client, m.url, &quote); err != nil {
			return MarketQuote{}, err
		}
		if quote.Price.IsZero() {
			return MarketQuote{}, fmt.Errorf("%w: market quote: missing price", ErrUnavailable)
		}
		return quote, nil
	})
}

// Ping reports whether the market endpoint is reachable; used by the
// readiness probe.
func (m *MarketClient) Ping(ctx context.Context) error {
	var quote MarketQuote
	return getJSON(ctx, m.client, m.url, &quote)
}
