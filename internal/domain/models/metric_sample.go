package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MetricSample is one recorded observation of a metric, bucketed to the
// hour it was taken in. Samples are append-only for the lifetime of the
// process.
type MetricSample struct {
	MetricKey  string
	HourBucket time.Time
	Value      decimal.Decimal
}
