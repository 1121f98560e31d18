package report

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatusBreakdown is one fulfillment stage's share of the period
type StatusBreakdown struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// TopProduct is one row of the best-seller table
type TopProduct struct {
	Title    string          `json:"title"`
	Quantity int64           `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// SummaryResponse is the admin dashboard payload for a period
type SummaryResponse struct {
	From              time.Time         `json:"from"`
	To                time.Time         `json:"to"`
	OrderCount        int64             `json:"order_count"`
	Revenue           decimal.Decimal   `json:"revenue"`
	AverageOrderValue decimal.Decimal   `json:"average_order_value"`
	StatusBreakdown   []StatusBreakdown `json:"status_breakdown"`
	TopProducts       []TopProduct      `json:"top_products"`
}
