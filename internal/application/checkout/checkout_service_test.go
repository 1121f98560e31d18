package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	appOrder "github.com/shopfront/backend/internal/application/order"
	"github.com/shopfront/backend/internal/domain/customer"
	"github.com/shopfront/backend/internal/domain/order"
	"github.com/shopfront/backend/internal/domain/promo"
	"github.com/shopfront/backend/internal/domain/shared"
)

// =============================================================================
// Mocks
// =============================================================================

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByNumber(ctx context.Context, number string) (*order.Order, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]order.Order, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) SaveWithShipment(ctx context.Context, o *order.Order, s *order.Shipment) error {
	args := m.Called(ctx, o, s)
	return args.Error(0)
}

func (m *MockOrderRepository) PlaceOrder(ctx context.Context, o *order.Order, s *order.Shipment, usage *promo.Usage) error {
	args := m.Called(ctx, o, s, usage)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderRepository) BulkDelete(ctx context.Context, ids []uuid.UUID) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) GenerateNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByCode(ctx context.Context, code string) (*customer.Customer, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByPhone(ctx context.Context, phone string) (*customer.Customer, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	args := m.Called(ctx, phone)
	return args.Bool(0), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]customer.Customer, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) FindSubscribed(ctx context.Context) ([]customer.Customer, error) {
	args := m.Called(ctx)
	return args.Get(0).([]customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, c *customer.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCustomerRepository) BulkDelete(ctx context.Context, ids []uuid.UUID) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) NextCode(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

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

type recordingNotifier struct {
	orders []*order.Order
}

func (n *recordingNotifier) SendConfirmation(_ context.Context, o *order.Order) {
	n.orders = append(n.orders, o)
}

// =============================================================================
// Fixtures
// =============================================================================

var testNow = time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

func validRequest() CheckoutRequest {
	return CheckoutRequest{
		CustomerName:  "Vikram Shah",
		Email:         "Vikram@Example.com",
		Phone:         "+919811122233",
		PaymentStatus: "prepaid",
		Address: appOrder.AddressRequest{
			Line1:      "12 Linking Road",
			City:       "Mumbai",
			State:      "Maharashtra",
			PostalCode: "400050",
			Country:    "India",
			Phone:      "+919811122233",
		},
		Items: []CheckoutItemRequest{
			{Title: "Oxford Shirt", Size: "M", Quantity: 2, UnitPrice: decimal.NewFromInt(100)},
			{Title: "Pocket Square", Size: "", Quantity: 1, UnitPrice: decimal.NewFromInt(50)},
		},
	}
}

type checkoutFixture struct {
	service      *CheckoutService
	orderRepo    *MockOrderRepository
	customerRepo *MockCustomerRepository
	couponRepo   *MockCouponRepository
	notifier     *recordingNotifier
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()
	orderRepo := new(MockOrderRepository)
	customerRepo := new(MockCustomerRepository)
	couponRepo := new(MockCouponRepository)
	notifier := &recordingNotifier{}

	service := NewCheckoutService(orderRepo, customerRepo, couponRepo, notifier, nil,
		WithClock(func() time.Time { return testNow }))

	return &checkoutFixture{
		service:      service,
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		couponRepo:   couponRepo,
		notifier:     notifier,
	}
}

// =============================================================================
// Tests
// =============================================================================

func TestCheckoutService_Checkout(t *testing.T) {
	t.Run("recomputes totals server-side", func(t *testing.T) {
		f := newCheckoutFixture(t)
		f.customerRepo.On("FindByPhone", mock.Anything, "+919811122233").Return(nil, shared.ErrNotFound)
		f.customerRepo.On("NextCode", mock.Anything).Return("CUST-12", nil)
		f.customerRepo.On("Save", mock.Anything, mock.AnythingOfType("*customer.Customer")).Return(nil)
		f.orderRepo.On("GenerateNumber", mock.Anything).Return("ORD-202608-0100", nil)
		f.orderRepo.On("PlaceOrder", mock.Anything, mock.Anything, mock.Anything, (*promo.Usage)(nil)).Return(nil)

		resp, err := f.service.Checkout(context.Background(), validRequest())
		require.NoError(t, err)

		// 2*100 + 1*50
		assert.True(t, resp.Order.Subtotal.Equal(decimal.NewFromInt(250)))
		assert.True(t, resp.Order.Total.Equal(decimal.NewFromInt(250)))
		assert.Equal(t, "CUST-12", resp.CustomerCode)
		assert.Equal(t, "pending", resp.Order.Status)
		require.Len(t, f.notifier.orders, 1)
		assert.Equal(t, "vikram@example.com", f.notifier.orders[0].Email)
	})

	t.Run("reuses existing customer matched by phone", func(t *testing.T) {
		f := newCheckoutFixture(t)
		existing, err := customer.NewCustomer("CUST-3", "Vikram Shah", "+919811122233")
		require.NoError(t, err)

		f.customerRepo.On("FindByPhone", mock.Anything, "+919811122233").Return(existing, nil)
		f.customerRepo.On("Save", mock.Anything, existing).Return(nil)
		f.orderRepo.On("GenerateNumber", mock.Anything).Return("ORD-202608-0101", nil)
		f.orderRepo.On("PlaceOrder", mock.Anything, mock.Anything, mock.Anything, (*promo.Usage)(nil)).Return(nil)

		resp, err := f.service.Checkout(context.Background(), validRequest())
		require.NoError(t, err)

		assert.Equal(t, "CUST-3", resp.CustomerCode)
		assert.Contains(t, existing.Emails, "vikram@example.com")
		f.customerRepo.AssertNotCalled(t, "NextCode", mock.Anything)
	})

	t.Run("applies and redeems a valid coupon", func(t *testing.T) {
		f := newCheckoutFixture(t)
		coupon, err := promo.NewCoupon("SAVE10", promo.CouponGlobal, promo.DiscountPercent,
			decimal.NewFromInt(10), 0, testNow.Add(24*time.Hour), "")
		require.NoError(t, err)

		f.customerRepo.On("FindByPhone", mock.Anything, "+919811122233").Return(nil, shared.ErrNotFound)
		f.customerRepo.On("NextCode", mock.Anything).Return("CUST-12", nil)
		f.customerRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
		f.orderRepo.On("GenerateNumber", mock.Anything).Return("ORD-202608-0102", nil)
		f.orderRepo.On("PlaceOrder", mock.Anything, mock.Anything, mock.Anything, mock.MatchedBy(func(u *promo.Usage) bool {
			return u != nil && u.CouponID == coupon.ID && u.CustomerCode == "CUST-12"
		})).Return(nil)
		f.couponRepo.On("FindByCode", mock.Anything, "SAVE10").Return(coupon, nil)
		f.couponRepo.On("HasUsage", mock.Anything, coupon.ID, "CUST-12").Return(false, nil)

		req := validRequest()
		req.CouponCode = "SAVE10"

		resp, err := f.service.Checkout(context.Background(), req)
		require.NoError(t, err)

		assert.True(t, resp.Discount.Equal(decimal.NewFromInt(25)))
		assert.True(t, resp.Order.Total.Equal(decimal.NewFromInt(225)))
		f.orderRepo.AssertExpectations(t)
	})

	t.Run("failed redemption write fails the checkout", func(t *testing.T) {
		f := newCheckoutFixture(t)
		coupon, err := promo.NewCoupon("SAVE10", promo.CouponGlobal, promo.DiscountPercent,
			decimal.NewFromInt(10), 0, testNow.Add(24*time.Hour), "")
		require.NoError(t, err)

		f.customerRepo.On("FindByPhone", mock.Anything, "+919811122233").Return(nil, shared.ErrNotFound)
		f.customerRepo.On("NextCode", mock.Anything).Return("CUST-12", nil)
		f.customerRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
		f.orderRepo.On("GenerateNumber", mock.Anything).Return("ORD-202608-0104", nil)
		f.couponRepo.On("FindByCode", mock.Anything, "SAVE10").Return(coupon, nil)
		f.couponRepo.On("HasUsage", mock.Anything, coupon.ID, "CUST-12").Return(false, nil)
		// The order and redemption commit together, so a rolled-back
		// usage write means no order either.
		f.orderRepo.On("PlaceOrder", mock.Anything, mock.Anything, mock.Anything,
			mock.AnythingOfType("*promo.Usage")).Return(errors.New("duplicate key"))

		req := validRequest()
		req.CouponCode = "SAVE10"

		_, err = f.service.Checkout(context.Background(), req)

		require.Error(t, err)
		assert.Empty(t, f.notifier.orders)
	})

	t.Run("expired coupon blocks checkout", func(t *testing.T) {
		f := newCheckoutFixture(t)
		coupon, err := promo.NewCoupon("OLD", promo.CouponGlobal, promo.DiscountFlat,
			decimal.NewFromInt(50), 0, testNow.Add(-time.Hour), "")
		require.NoError(t, err)

		f.customerRepo.On("FindByPhone", mock.Anything, "+919811122233").Return(nil, shared.ErrNotFound)
		f.customerRepo.On("NextCode", mock.Anything).Return("CUST-12", nil)
		f.customerRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
		f.orderRepo.On("GenerateNumber", mock.Anything).Return("ORD-202608-0103", nil)
		f.couponRepo.On("FindByCode", mock.Anything, "OLD").Return(coupon, nil)
		f.couponRepo.On("HasUsage", mock.Anything, coupon.ID, "CUST-12").Return(false, nil)

		req := validRequest()
		req.CouponCode = "OLD"

		_, err = f.service.Checkout(context.Background(), req)

		assert.ErrorIs(t, err, promo.ErrCouponExpired)
		f.orderRepo.AssertNotCalled(t, "PlaceOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCheckoutService_PreviewCoupon(t *testing.T) {
	t.Run("previews percent discount", func(t *testing.T) {
		f := newCheckoutFixture(t)
		coupon, err := promo.NewCoupon("SAVE10", promo.CouponGlobal, promo.DiscountPercent,
			decimal.NewFromInt(10), 0, testNow.Add(24*time.Hour), "")
		require.NoError(t, err)

		f.couponRepo.On("FindByCode", mock.Anything, "SAVE10").Return(coupon, nil)
		f.couponRepo.On("HasUsage", mock.Anything, coupon.ID, "CUST-1").Return(false, nil)

		resp, err := f.service.PreviewCoupon(context.Background(), CouponPreviewRequest{
			Code:         "SAVE10",
			CustomerCode: "CUST-1",
			Subtotal:     decimal.NewFromInt(1000),
		})
		require.NoError(t, err)

		assert.True(t, resp.Discount.Equal(decimal.NewFromInt(100)))
		assert.True(t, resp.Total.Equal(decimal.NewFromInt(900)))
	})

	t.Run("unknown code surfaces not found", func(t *testing.T) {
		f := newCheckoutFixture(t)
		f.couponRepo.On("FindByCode", mock.Anything, "NOPE").Return(nil, shared.ErrNotFound)

		_, err := f.service.PreviewCoupon(context.Background(), CouponPreviewRequest{
			Code:     "NOPE",
			Subtotal: decimal.NewFromInt(100),
		})

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("already used coupon rejected", func(t *testing.T) {
		f := newCheckoutFixture(t)
		coupon, err := promo.NewCoupon("ONCE", promo.CouponGlobal, promo.DiscountFlat,
			decimal.NewFromInt(100), 0, testNow.Add(24*time.Hour), "")
		require.NoError(t, err)

		f.couponRepo.On("FindByCode", mock.Anything, "ONCE").Return(coupon, nil)
		f.couponRepo.On("HasUsage", mock.Anything, coupon.ID, "CUST-1").Return(true, nil)

		_, err = f.service.PreviewCoupon(context.Background(), CouponPreviewRequest{
			Code:         "ONCE",
			CustomerCode: "CUST-1",
			Subtotal:     decimal.NewFromInt(500),
		})

		assert.ErrorIs(t, err, promo.ErrCouponAlreadyUsed)
	})
}
