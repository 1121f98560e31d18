package checkout

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	appOrder "github.com/shopfront/backend/internal/application/order"
	"github.com/shopfront/backend/internal/domain/customer"
	"github.com/shopfront/backend/internal/domain/order"
	"github.com/shopfront/backend/internal/domain/promo"
	"github.com/shopfront/backend/internal/domain/shared"
)

// Notifier sends the order confirmation email after checkout
type Notifier interface {
	SendConfirmation(ctx context.Context, o *order.Order)
}

// OrderStore is the slice of order persistence checkout needs. PlaceOrder
// must commit the order, its shipment, and the coupon redemption (when a
// usage is given) in a single transaction.
type OrderStore interface {
	GenerateNumber(ctx context.Context) (string, error)
	PlaceOrder(ctx context.Context, o *order.Order, s *order.Shipment, usage *promo.Usage) error
}

// CheckoutService places storefront orders. Customers are deduplicated by
// phone; totals are always recomputed from the line items.
type CheckoutService struct {
	orderRepo    OrderStore
	customerRepo customer.Repository
	couponRepo   promo.Repository
	notifier     Notifier
	logger       *zap.Logger
	now          func() time.Time
}

// CheckoutServiceOption configures the CheckoutService
type CheckoutServiceOption func(*CheckoutService)

// WithClock overrides the time source
func WithClock(now func() time.Time) CheckoutServiceOption {
	return func(s *CheckoutService) {
		s.now = now
	}
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(
	orderRepo OrderStore,
	customerRepo customer.Repository,
	couponRepo promo.Repository,
	notifier Notifier,
	logger *zap.Logger,
	opts ...CheckoutServiceOption,
) *CheckoutService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &CheckoutService{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		couponRepo:   couponRepo,
		notifier:     notifier,
		logger:       logger,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Checkout places an order
func (s *CheckoutService) Checkout(ctx context.Context, req CheckoutRequest) (*CheckoutResponse, error) {
	cust, err := s.resolveCustomer(ctx, req)
	if err != nil {
		return nil, err
	}

	number, err := s.orderRepo.GenerateNumber(ctx)
	if err != nil {
		return nil, err
	}

	o, err := order.NewOrder(number, cust.Code, req.CustomerName, strings.ToLower(req.Email),
		order.PaymentStatus(req.PaymentStatus), order.Address{
			Line1:      req.Address.Line1,
			Line2:      req.Address.Line2,
			City:       req.Address.City,
			State:      req.Address.State,
			PostalCode: req.Address.PostalCode,
			Country:    req.Address.Country,
			Phone:      req.Address.Phone,
		})
	if err != nil {
		return nil, err
	}

	for _, item := range req.Items {
		if _, err := o.AddItem(item.Title, item.Size, item.Quantity, item.UnitPrice); err != nil {
			return nil, err
		}
	}

	var coupon *promo.Coupon
	if req.CouponCode != "" {
		coupon, err = s.validateCoupon(ctx, req.CouponCode, cust.Code)
		if err != nil {
			return nil, err
		}
		if err := o.ApplyDiscount(coupon.DiscountOn(o.Subtotal), coupon.Code); err != nil {
			return nil, err
		}
	}

	shipment, err := order.NewShipment(o)
	if err != nil {
		return nil, err
	}

	var usage *promo.Usage
	if coupon != nil {
		usage = promo.NewUsage(coupon.ID, cust.Code, o.ID)
	}
	if err := s.orderRepo.PlaceOrder(ctx, o, shipment, usage); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.SendConfirmation(ctx, o)
	}

	return &CheckoutResponse{
		Order:        appOrder.ToOrderResponse(o),
		CustomerCode: cust.Code,
		Discount:     o.Discount,
	}, nil
}

// PreviewCoupon reports what a coupon would take off a subtotal
func (s *CheckoutService) PreviewCoupon(ctx context.Context, req CouponPreviewRequest) (*CouponPreviewResponse, error) {
	coupon, err := s.validateCoupon(ctx, req.Code, req.CustomerCode)
	if err != nil {
		return nil, err
	}
	discount := coupon.DiscountOn(req.Subtotal)
	return &CouponPreviewResponse{
		Code:     coupon.Code,
		Kind:     string(coupon.Kind),
		Value:    coupon.Value,
		Discount: discount,
		Total:    req.Subtotal.Sub(discount),
	}, nil
}

// resolveCustomer finds the customer by phone or creates a new record
func (s *CheckoutService) resolveCustomer(ctx context.Context, req CheckoutRequest) (*customer.Customer, error) {
	cust, err := s.customerRepo.FindByPhone(ctx, req.Phone)
	if err != nil && err != shared.ErrNotFound {
		return nil, err
	}

	if cust == nil {
		code, err := s.customerRepo.NextCode(ctx)
		if err != nil {
			return nil, err
		}
		cust, err = customer.NewCustomer(code, req.CustomerName, req.Phone)
		if err != nil {
			return nil, err
		}
	}

	if err := cust.AddEmail(req.Email); err != nil {
		return nil, err
	}
	cust.SetAddress(req.Address.Line1, req.Address.Line2, req.Address.City,
		req.Address.State, req.Address.PostalCode, req.Address.Country)
	if req.NewsletterOptIn {
		cust.SubscribeNewsletter()
	}
	cust.Touch()

	if err := s.customerRepo.Save(ctx, cust); err != nil {
		return nil, err
	}
	return cust, nil
}

// validateCoupon applies the full rejection ladder for a coupon code
func (s *CheckoutService) validateCoupon(ctx context.Context, code, customerCode string) (*promo.Coupon, error) {
	coupon, err := s.couponRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	alreadyUsed := false
	if customerCode != "" {
		alreadyUsed, err = s.couponRepo.HasUsage(ctx, coupon.ID, customerCode)
		if err != nil {
			return nil, err
		}
	}

	if err := coupon.ValidateFor(customerCode, s.now(), alreadyUsed); err != nil {
		return nil, err
	}
	return coupon, nil
}
