package report

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shopfront/backend/internal/domain/order"
	"github.com/shopfront/backend/internal/domain/shared"
)

type MockAnalyticsRepository struct {
	mock.Mock
}

func (m *MockAnalyticsRepository) CountBetween(ctx context.Context, from, to time.Time) (int64, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAnalyticsRepository) RevenueBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockAnalyticsRepository) CountByStatus(ctx context.Context, from, to time.Time) ([]order.StatusCount, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.StatusCount), args.Error(1)
}

func (m *MockAnalyticsRepository) TopProducts(ctx context.Context, from, to time.Time, limit int) ([]order.ProductSales, error) {
	args := m.Called(ctx, from, to, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.ProductSales), args.Error(1)
}

var reportNow = time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

func TestAnalyticsService_Summary(t *testing.T) {
	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	repo := new(MockAnalyticsRepository)
	repo.On("CountBetween", mock.Anything, from, to).Return(int64(40), nil)
	repo.On("RevenueBetween", mock.Anything, from, to).Return(decimal.NewFromInt(119960), nil)
	repo.On("CountByStatus", mock.Anything, from, to).Return([]order.StatusCount{
		{Status: order.StatusDelivered, Count: 30},
		{Status: order.StatusShipped, Count: 10},
	}, nil)
	repo.On("TopProducts", mock.Anything, from, to, 10).Return([]order.ProductSales{
		{Title: "Linen Shirt", Quantity: 55, Revenue: decimal.NewFromInt(82445)},
	}, nil)

	service := NewAnalyticsService(repo, WithClock(func() time.Time { return reportNow }))
	summary, err := service.Summary(context.Background(), from, to)

	require.NoError(t, err)
	assert.Equal(t, int64(40), summary.OrderCount)
	assert.True(t, summary.Revenue.Equal(decimal.NewFromInt(119960)))
	assert.True(t, summary.AverageOrderValue.Equal(decimal.NewFromInt(2999)))
	require.Len(t, summary.StatusBreakdown, 2)
	assert.Equal(t, "delivered", summary.StatusBreakdown[0].Status)
	require.Len(t, summary.TopProducts, 1)
	assert.Equal(t, "Linen Shirt", summary.TopProducts[0].Title)
}

func TestAnalyticsService_Summary_DefaultsPeriod(t *testing.T) {
	expectedTo := reportNow
	expectedFrom := reportNow.Add(-30 * 24 * time.Hour)

	repo := new(MockAnalyticsRepository)
	repo.On("CountBetween", mock.Anything, expectedFrom, expectedTo).Return(int64(0), nil)
	repo.On("RevenueBetween", mock.Anything, expectedFrom, expectedTo).Return(decimal.Zero, nil)
	repo.On("CountByStatus", mock.Anything, expectedFrom, expectedTo).Return([]order.StatusCount{}, nil)
	repo.On("TopProducts", mock.Anything, expectedFrom, expectedTo, 10).Return([]order.ProductSales{}, nil)

	service := NewAnalyticsService(repo, WithClock(func() time.Time { return reportNow }))
	summary, err := service.Summary(context.Background(), time.Time{}, time.Time{})

	require.NoError(t, err)
	assert.Equal(t, expectedFrom, summary.From)
	assert.Equal(t, expectedTo, summary.To)
	assert.True(t, summary.AverageOrderValue.IsZero())
	repo.AssertExpectations(t)
}

func TestAnalyticsService_Summary_RejectsInvertedPeriod(t *testing.T) {
	service := NewAnalyticsService(new(MockAnalyticsRepository))

	_, err := service.Summary(context.Background(), reportNow, reportNow.Add(-time.Hour))

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_PERIOD", domainErr.Code)
}
