package models

// StatField is a single display-ready statistic.
//
// Fields:
//   - Value: the current value, pre-formatted for display (e.g., "$1,234,567").
//   - OneDayDiff: the 24h change (e.g., "+3.21%" or "+17"); nil when no
//     baseline exists yet, never zero or an error.
type StatField struct {
	Value      string
	OneDayDiff *string
}

// StatsSnapshot is one point-in-time aggregated result. It is built in
// full by the aggregator and never mutated afterwards; a failed
// aggregation produces no snapshot at all.
type StatsSnapshot struct {
	Price          StatField
	MarketCap      StatField
	TotalLocked    StatField
	TotalOrders    StatField
	FilledOrders   StatField
	UniqueUsers    StatField
	AmountIn       StatField
	ReceivedAmount StatField
}
