package models

import "time"

// OrderStatus is the lifecycle state reported by the subgraph for a limit order.
type OrderStatus string

const (
	OrderStatusOpen      OrderStatus = "Open"
	OrderStatusClosed    OrderStatus = "Closed"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

// Order is one limit order as returned by the subgraph.
// Orders are immutable once fetched; the full collection for one
// aggregation pass is built once and discarded after the snapshot
// is produced.
//
// Fields:
//   - CreatedAt: when the order was placed on-chain.
//   - ExecutedAt: when the order was filled; nil if never executed.
//   - Status: lifecycle state (Open, Closed, Cancelled, ...).
//   - Creator: address of the wallet that placed the order.
type Order struct {
	CreatedAt  time.Time
	ExecutedAt *time.Time
	Status     OrderStatus
	Creator    string
}

// Executed reports whether the order was filled: status Closed and an
// execution timestamp present.
func (o Order) Executed() bool {
	return o.Status == OrderStatusClosed && o.ExecutedAt != nil
}
