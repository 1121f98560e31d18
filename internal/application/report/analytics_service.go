package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shopfront/backend/internal/domain/order"
	"github.com/shopfront/backend/internal/domain/shared"
)

const defaultPeriod = 30 * 24 * time.Hour

// AnalyticsService assembles the admin dashboard from aggregate queries
type AnalyticsService struct {
	analyticsRepo order.AnalyticsRepository
	now           func() time.Time
}

// Option configures the analytics service
type Option func(*AnalyticsService)

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(s *AnalyticsService) { s.now = now }
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(analyticsRepo order.AnalyticsRepository, opts ...Option) *AnalyticsService {
	s := &AnalyticsService{
		analyticsRepo: analyticsRepo,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summary computes the dashboard for [from, to]. A zero from defaults to 30
// days before to; a zero to defaults to now.
func (s *AnalyticsService) Summary(ctx context.Context, from, to time.Time) (*SummaryResponse, error) {
	if to.IsZero() {
		to = s.now()
	}
	if from.IsZero() {
		from = to.Add(-defaultPeriod)
	}
	if from.After(to) {
		return nil, shared.NewDomainError("INVALID_PERIOD", "'from' must not be after 'to'")
	}

	count, err := s.analyticsRepo.CountBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	revenue, err := s.analyticsRepo.RevenueBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.analyticsRepo.CountByStatus(ctx, from, to)
	if err != nil {
		return nil, err
	}
	top, err := s.analyticsRepo.TopProducts(ctx, from, to, 10)
	if err != nil {
		return nil, err
	}

	avg := decimal.Zero
	if count > 0 {
		avg = revenue.Div(decimal.NewFromInt(count)).Round(2)
	}

	breakdown := make([]StatusBreakdown, len(byStatus))
	for i, sc := range byStatus {
		breakdown[i] = StatusBreakdown{Status: string(sc.Status), Count: sc.Count}
	}
	products := make([]TopProduct, len(top))
	for i, p := range top {
		products[i] = TopProduct{Title: p.Title, Quantity: p.Quantity, Revenue: p.Revenue}
	}

	return &SummaryResponse{
		From:              from,
		To:                to,
		OrderCount:        count,
		Revenue:           revenue,
		AverageOrderValue: avg,
		StatusBreakdown:   breakdown,
		TopProducts:       products,
	}, nil
}
