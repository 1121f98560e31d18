package promo

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shopfront/backend/internal/domain/promo"
	"github.com/shopfront/backend/internal/domain/shared"
)

type MockCouponRepository struct {
	mock.Mock
}

func (m *MockCouponRepository) FindByID(ctx context.Context, id uuid.UUID) (*promo.Coupon, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*promo.Coupon), args.Error(1)
}

func (m *MockCouponRepository) FindByCode(ctx context.Context, code string) (*promo.Coupon, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*promo.Coupon), args.Error(1)
}

func (m *MockCouponRepository) FindAll(ctx context.Context, filter shared.Filter) ([]promo.Coupon, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]promo.Coupon), args.Error(1)
}

func (m *MockCouponRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCouponRepository) Save(ctx context.Context, c *promo.Coupon) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCouponRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCouponRepository) HasUsage(ctx context.Context, couponID uuid.UUID, customerCode string) (bool, error) {
	args := m.Called(ctx, couponID, customerCode)
	return args.Bool(0), args.Error(1)
}

func TestCouponService_Create(t *testing.T) {
	repo := new(MockCouponRepository)
	repo.On("FindByCode", mock.Anything, "MONSOON20").Return(nil, shared.ErrNotFound)
	repo.On("Save", mock.Anything, mock.MatchedBy(func(c *promo.Coupon) bool {
		return c.Code == "MONSOON20" && c.Type == promo.CouponGlobal && c.Kind == promo.DiscountPercent && c.Active
	})).Return(nil)

	service := NewCouponService(repo)
	resp, err := service.Create(context.Background(), &CreateCouponRequest{
		Code:      "monsoon20",
		Type:      "global",
		Kind:      "percent",
		Value:     decimal.NewFromInt(20),
		UsageCap:  100,
		ExpiresAt: time.Now().Add(30 * 24 * time.Hour),
	})

	require.NoError(t, err)
	assert.Equal(t, "MONSOON20", resp.Code)
	assert.True(t, resp.Active)
	repo.AssertExpectations(t)
}

func TestCouponService_Create_DuplicateCode(t *testing.T) {
	existing, err := promo.NewCoupon("SAVE10", promo.CouponGlobal, promo.DiscountPercent,
		decimal.NewFromInt(10), 0, time.Now().Add(time.Hour), "")
	require.NoError(t, err)

	repo := new(MockCouponRepository)
	repo.On("FindByCode", mock.Anything, "SAVE10").Return(existing, nil)

	service := NewCouponService(repo)
	_, err = service.Create(context.Background(), &CreateCouponRequest{
		Code:      "save10",
		Type:      "global",
		Kind:      "percent",
		Value:     decimal.NewFromInt(10),
		ExpiresAt: time.Now().Add(time.Hour),
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "DUPLICATE_CODE", domainErr.Code)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCouponService_Create_IndividualRequiresCustomer(t *testing.T) {
	repo := new(MockCouponRepository)
	repo.On("FindByCode", mock.Anything, "VIP50").Return(nil, shared.ErrNotFound)

	service := NewCouponService(repo)
	_, err := service.Create(context.Background(), &CreateCouponRequest{
		Code:      "VIP50",
		Type:      "individual",
		Kind:      "flat",
		Value:     decimal.NewFromInt(500),
		ExpiresAt: time.Now().Add(time.Hour),
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_COUPON", domainErr.Code)
}

func TestCouponService_Update_Deactivate(t *testing.T) {
	existing, err := promo.NewCoupon("SAVE10", promo.CouponGlobal, promo.DiscountPercent,
		decimal.NewFromInt(10), 0, time.Now().Add(time.Hour), "")
	require.NoError(t, err)

	repo := new(MockCouponRepository)
	repo.On("FindByID", mock.Anything, existing.ID).Return(existing, nil)
	repo.On("Save", mock.Anything, existing).Return(nil)

	active := false
	service := NewCouponService(repo)
	resp, err := service.Update(context.Background(), existing.ID, &UpdateCouponRequest{Active: &active})

	require.NoError(t, err)
	assert.False(t, resp.Active)
}

func TestCouponService_Update_RejectsNonPositiveValue(t *testing.T) {
	existing, err := promo.NewCoupon("SAVE10", promo.CouponGlobal, promo.DiscountPercent,
		decimal.NewFromInt(10), 0, time.Now().Add(time.Hour), "")
	require.NoError(t, err)

	repo := new(MockCouponRepository)
	repo.On("FindByID", mock.Anything, existing.ID).Return(existing, nil)

	zero := decimal.Zero
	service := NewCouponService(repo)
	_, err = service.Update(context.Background(), existing.ID, &UpdateCouponRequest{Value: &zero})

	require.Error(t, err)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCouponService_List(t *testing.T) {
	c1, err := promo.NewCoupon("SAVE10", promo.CouponGlobal, promo.DiscountPercent,
		decimal.NewFromInt(10), 0, time.Now().Add(time.Hour), "")
	require.NoError(t, err)

	repo := new(MockCouponRepository)
	filter := shared.DefaultFilter()
	repo.On("FindAll", mock.Anything, filter).Return([]promo.Coupon{*c1}, nil)
	repo.On("Count", mock.Anything, filter).Return(int64(1), nil)

	service := NewCouponService(repo)
	page, err := service.List(context.Background(), filter)

	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "SAVE10", page.Items[0].Code)
}
