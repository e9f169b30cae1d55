package dto

import "github.com/usemate/statsbot/internal/domain/models"

// StatFieldDTO is the JSON shape of one statistic.
//
// OneDayDiff is omitted entirely when no baseline exists for the metric,
// matching the snapshot semantics (absent, not zero).
type StatFieldDTO struct {
	Value      string  `json:"value" example:"$1,234,567"`
	OneDayDiff *string `json:"one_day_diff,omitempty" example:"+3.21%"`
}

// StatsResponse represents the JSON structure returned by the
// GET /api/v1/stats endpoint.
//
// Fields match the API contract and may differ from internal domain models.
// This ensures loose coupling between the API surface and business logic.
type StatsResponse struct {
	Price          StatFieldDTO `json:"price"`
	MarketCap      StatFieldDTO `json:"market_cap"`
	TotalLocked    StatFieldDTO `json:"total_locked"`
	TotalOrders    StatFieldDTO `json:"total_orders"`
	FilledOrders   StatFieldDTO `json:"filled_orders"`
	UniqueUsers    StatFieldDTO `json:"unique_users"`
	AmountIn       StatFieldDTO `json:"amount_in"`
	ReceivedAmount StatFieldDTO `json:"received_amount"`
}

// NewStatsResponse maps a domain snapshot onto the API response shape.
func NewStatsResponse(s *models.StatsSnapshot) StatsResponse {
	field := func(f models.StatField) StatFieldDTO {
		return StatFieldDTO{Value: f.Value, OneDayDiff: f.OneDayDiff}
	}
	return StatsResponse{
		Price:          field(s.Price),
		MarketCap:      field(s.MarketCap),
		TotalLocked:    field(s.TotalLocked),
		TotalOrders:    field(s.TotalOrders),
		FilledOrders:   field(s.FilledOrders),
		UniqueUsers:    field(s.UniqueUsers),
		AmountIn:       field(s.AmountIn),
		ReceivedAmount: field(s.ReceivedAmount),
	}
}
