package upstream

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/usemate/statsbot/internal/cache"
	"github.com/usemate/statsbot/internal/domain/models"
)

// ordersQuery pages through the order history; the subgraph signals
// exhaustion with an empty array.
const ordersQuery = `query getOrders($skip: Int, $first: Int) {
  orders(first: $first, skip: $skip) {
    createdTimestamp
    executedTimestamp
    status
    creator
  }
}`

// SubgraphClient fetches pages of order history from the GraphQL
// subgraph. Each page is cached under a key derived from the endpoint
// and the (first, skip) variables, so a second aggregation pass within
// the TTL window replays all previously fetched pages without touching
// the subgraph.
type SubgraphClient struct {
	url    string
	client httpDoer
	cache  *cache.RequestCache
}

// NewSubgraphClient builds a SubgraphClient for the given endpoint. A
// nil httpClient falls back to a default with a request timeout.
func NewSubgraphClient(url string, httpClient *http.Client, c *cache.RequestCache) *SubgraphClient {
	if httpClient == nil {
		httpClient = defaultHTTPClient()
	}
	return &SubgraphClient{url: url, client: httpClient, cache: c}
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphqlError struct {
	Message string `json:"message"`
}

type ordersEnvelope struct {
	Data *struct {
		Orders []subgraphOrder `json:"orders"`
	} `json:"data"`
	Errors []graphqlError `json:"errors"`
}

// subgraphOrder is the raw wire shape; BigInt timestamps arrive as
// decimal strings of unix seconds.
type subgraphOrder struct {
	CreatedTimestamp  string  `json:"createdTimestamp"`
	ExecutedTimestamp *string `json:"executedTimestamp"`
	Status            string  `json:"status"`
	Creator           string  `json:"creator"`
}

// OrdersPage fetches one page of orders starting at offset. The page is
// memoized in the TTL cache keyed by (endpoint, first, skip).
func (s *SubgraphClient) OrdersPage(ctx context.Context, offset, limit int) ([]models.Order, error) {
	key := cache.Key(s.url, map[string]any{"first": limit, "skip": offset})

	return cache.Memoize(ctx, s.cache, key, func(ctx context.Context) ([]models.Order, error) {
		body := graphqlRequest{
			Query:     ordersQuery,
			Variables: map[string]any{"first": limit, "skip": offset},
		}

		var envelope ordersEnvelope
		if err := postJSON(ctx, s.client, s.url, body, &envelope); err != nil {
			return nil, err
		}
		if len(envelope.Errors) > 0 {
			return nil, fmt.Errorf("%w: subgraph: %s", ErrUnavailable, envelope.Errors[0].Message)
		}
		if envelope.Data == nil {
			return nil, fmt.Errorf("%w: subgraph: response has no data", ErrUnavailable)
		}

		orders := make([]models.Order, 0, len(envelope.Data.Orders))
		for i, raw := range envelope.Data.Orders {
			order, err := raw.toOrder()
			if err != nil {
				return nil, fmt.Errorf("%w: subgraph: order %d at offset %d: %v", ErrUnavailable, i, offset, err)
			}
			orders = append(orders, order)
		}
		return orders, nil
	})
}

func (raw subgraphOrder) toOrder() (models.Order, error) {
	created, err := parseUnixSeconds(raw.CreatedTimestamp)
	if err != nil {
		return models.Order{}, fmt.Errorf("createdTimestamp: %v", err)
	}

	order := models.Order{
		CreatedAt: created,
		Status:    models.OrderStatus(raw.Status),
		Creator:   raw.Creator,
	}
	if raw.ExecutedTimestamp != nil && *raw.ExecutedTimestamp != "" {
		executed, err := parseUnixSeconds(*raw.ExecutedTimestamp)
		if err != nil {
			return models.Order{}, fmt.Errorf("executedTimestamp: %v", err)
		}
		order.ExecutedAt = &executed
	}
	return order, nil
}

func parseUnixSeconds(s string) (time.Time, error) {
	secs, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("not a unix timestamp: %q", s)
	}
	return time.Unix(secs, 0).UTC(), nil
}
