// Package stats assembles the upstream market data, exchange totals and
// order history into a single display-ready snapshot.
package stats

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/usemate/statsbot/internal/collector"
	"github.com/usemate/statsbot/internal/domain/models"
	"github.com/usemate/statsbot/internal/history"
	"github.com/usemate/statsbot/internal/logger"
	"github.com/usemate/statsbot/internal/upstream"
)

// DefaultPageSize is how many orders are requested per subgraph page.
const DefaultPageSize = 1000

// Metric keys recorded in the hourly snapshot store for metrics whose
// upstream source reports no 24h change of its own.
const (
	metricTotalLocked    = "totalLocked"
	metricAmountIn       = "amountIn"
	metricReceivedAmount = "receivedAmount"
)

// Service computes stats snapshots on demand.
// This decouples the bot and HTTP handlers from the upstream plumbing.
type Service interface {
	ComputeSnapshot(ctx context.Context) (*models.StatsSnapshot, error)
}

// MarketSource supplies the current market quote.
type MarketSource interface {
	Quote(ctx context.Context) (upstream.MarketQuote, error)
}

// ExchangeSource supplies the current exchange totals.
type ExchangeSource interface {
	Stats(ctx context.Context) (upstream.ExchangeStats, error)
}

// OrderSource supplies one page of order history at a time.
type OrderSource interface {
	OrdersPage(ctx context.Context, offset, limit int) ([]models.Order, error)
}

type service struct {
	market   MarketSource
	exchange ExchangeSource
	orders   OrderSource
	history  *history.Store
	pageSize int
	now      func() time.Time
}

// Option customizes the service.
type Option func(*service)

// WithPageSize overrides the subgraph page size.
func WithPageSize(size int) Option {
	return func(s *service) { s.pageSize = size }
}

// WithClock injects a deterministic time source; used by tests. All
// "last 24 hours" windows and hour buckets are evaluated against this
// clock at the moment ComputeSnapshot is called.
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

// NewService wires a stats service from its collaborators. The history
// store is owned by the caller and shared across invocations; everything
// else is read per call.
func NewService(market MarketSource, exchange ExchangeSource, orders OrderSource, hist *history.Store, opts ...Option) Service {
	s := &service{
		market:   market,
		exchange: exchange,
		orders:   orders,
		history:  hist,
		pageSize: DefaultPageSize,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ComputeSnapshot issues the independent upstream calls concurrently,
// drains the order history, and derives every output field. Aggregation
// is all-or-nothing: any upstream failure fails the whole call and no
// partial snapshot is returned.
func (s *service) ComputeSnapshot(ctx context.Context) (*models.StatsSnapshot, error) {
	start := s.now()

	var (
		quote    upstream.MarketQuote
		exchange upstream.ExchangeStats
		orders   []models.Order
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		quote, err = s.market.Quote(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		exchange, err = s.exchange.Stats(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		orders, err = collector.CollectAll(gctx, s.orders.OrdersPage, s.pageSize)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snapshot := &models.StatsSnapshot{
		Price: models.StatField{
			Value:      "$" + quote.Price.String(),
			OneDayDiff: ptr(signedPercent(quote.PriceChange24h)),
		},
		MarketCap: models.StatField{
			Value:      "$" + groupThousands(quote.MarketCap),
			OneDayDiff: ptr(signedPercent(quote.MarketCapChange24h)),
		},
		TotalLocked:    s.deltaField(metricTotalLocked, exchange.TotalLocked, start),
		AmountIn:       s.deltaField(metricAmountIn, exchange.AmountIn, start),
		ReceivedAmount: s.deltaField(metricReceivedAmount, exchange.ReceivedAmount, start),
	}
	s.deriveOrderFields(snapshot, orders, start)

	logger.L().Info().
		Int("orders", len(orders)).
		Dur("elapsed", s.now().Sub(start)).
		Msg("snapshot computed")

	return snapshot, nil
}

// deltaField formats a monetary metric whose 24h change is not provided
// upstream: the current value is recorded into the hourly store as a
// side effect, and the delta is computed against the sample from 24h
// ago. With no baseline (or a zero current value) the diff stays absent.
func (s *service) deltaField(metricKey string, current decimal.Decimal, at time.Time) models.StatField {
	field := models.StatField{Value: "$" + groupThousands(current)}
	if current.IsZero() {
		return field
	}

	s.history.Record(metricKey, current, at)
	if previous, ok := s.history.OneDayAgo(metricKey, at); ok {
		field.OneDayDiff = ptr(history.PercentChange(previous, current))
	}
	return field
}

// deriveOrderFields fills the order-derived statistics. The 24h window
// is anchored at the aggregation call's current time.
func (s *service) deriveOrderFields(snapshot *models.StatsSnapshot, orders []models.Order, at time.Time) {
	oneDayAgo := at.Add(-24 * time.Hour)

	var executed, executed24, created24 int
	for _, order := range orders {
		if order.CreatedAt.After(oneDayAgo) {
			created24++
		}
		if order.Executed() {
			executed++
			if order.ExecutedAt.After(oneDayAgo) {
				executed24++
			}
		}
	}

	snapshot.TotalOrders = countField(len(orders), created24)
	snapshot.FilledOrders = countField(executed, executed24)
	snapshot.UniqueUsers = countField(
		uniqueCreators(orders, func(models.Order) bool { return true }),
		uniqueCreators(orders, func(o models.Order) bool { return o.CreatedAt.After(oneDayAgo) }),
	)
}

// uniqueCreators counts distinct creator addresses among orders passing
// the filter. Addresses compare case-insensitively: 0xABC and 0xabc are
// the same wallet.
func uniqueCreators(orders []models.Order, keep func(models.Order) bool) int {
	seen := make(map[string]struct{})
	for _, order := range orders {
		if keep(order) {
			seen[strings.ToLower(order.Creator)] = struct{}{}
		}
	}
	return len(seen)
}

func countField(total, last24h int) models.StatField {
	return models.StatField{
		Value:      strconv.Itoa(total),
		OneDayDiff: ptr("+" + strconv.Itoa(last24h)),
	}
}

// signedPercent renders an upstream-provided 24h change to two decimal
// places with an explicit sign for non-negative values.
func signedPercent(d decimal.Decimal) string {
	d = d.Round(2)
	if d.GreaterThanOrEqual(decimal.Zero) {
		return "+" + d.StringFixed(2) + "%"
	}
	return d.StringFixed(2) + "%"
}

// groupThousands renders a monetary magnitude as an integer with comma
// separators ("1234567.8" -> "1,234,567").
func groupThousands(d decimal.Decimal) string {
	s := d.Round(0).String()

	neg := strings.HasPrefix(s, "-")
	digits := strings.TrimPrefix(s, "-")

	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

func ptr(s string) *string { return &s }
