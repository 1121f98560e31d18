package promo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopfront/backend/internal/domain/shared"
)

// CouponType distinguishes coupons anyone may use from coupons assigned to
// a single customer.
type CouponType string

const (
	CouponGlobal     CouponType = "global"
	CouponIndividual CouponType = "individual"
)

// IsValid checks if the coupon type is a known value
func (t CouponType) IsValid() bool {
	return t == CouponGlobal || t == CouponIndividual
}

// DiscountKind selects how the coupon value is applied
type DiscountKind string

const (
	DiscountPercent DiscountKind = "percent"
	DiscountFlat    DiscountKind = "flat"
)

// IsValid checks if the discount kind is a known value
func (k DiscountKind) IsValid() bool {
	return k == DiscountPercent || k == DiscountFlat
}

// Validation errors returned by ValidateFor
var (
	ErrCouponInactive    = shared.NewDomainError("COUPON_INACTIVE", "Coupon is not active")
	ErrCouponExpired     = shared.NewDomainError("COUPON_EXPIRED", "Coupon has expired")
	ErrCouponExhausted   = shared.NewDomainError("COUPON_EXHAUSTED", "Coupon usage cap has been reached")
	ErrCouponAlreadyUsed = shared.NewDomainError("COUPON_ALREADY_USED", "Coupon has already been used by this customer")
	ErrCouponNotAssigned = shared.NewDomainError("COUPON_NOT_ASSIGNED", "Coupon is not assigned to this customer")
)

// Coupon is a discount code with a usage cap and expiry. Usage is tracked
// per customer to enforce single-use semantics.
type Coupon struct {
	shared.BaseEntity
	Code         string
	Type         CouponType
	Kind         DiscountKind
	Value        decimal.Decimal // percent (0-100) or flat amount
	UsageCap     int             // 0 = unlimited
	UsedCount    int
	ExpiresAt    time.Time
	CustomerCode string // set for individual coupons
	Active       bool
}

// NewCoupon creates a new coupon
func NewCoupon(code string, typ CouponType, kind DiscountKind, value decimal.Decimal, usageCap int, expiresAt time.Time, customerCode string) (*Coupon, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Coupon code cannot be empty")
	}
	if !typ.IsValid() {
		return nil, shared.NewDomainError("INVALID_COUPON_TYPE", "Coupon type must be 'global' or 'individual'")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_DISCOUNT_KIND", "Discount kind must be 'percent' or 'flat'")
	}
	if value.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_DISCOUNT_VALUE", "Discount value must be positive")
	}
	if kind == DiscountPercent && value.GreaterThan(decimal.NewFromInt(100)) {
		return nil, shared.NewDomainError("INVALID_DISCOUNT_VALUE", "Percent discount cannot exceed 100")
	}
	if typ == CouponIndividual && customerCode == "" {
		return nil, shared.NewDomainError("INVALID_COUPON", "Individual coupon requires a customer code")
	}

	return &Coupon{
		BaseEntity:   shared.NewBaseEntity(),
		Code:         code,
		Type:         typ,
		Kind:         kind,
		Value:        value,
		UsageCap:     usageCap,
		ExpiresAt:    expiresAt,
		CustomerCode: customerCode,
		Active:       true,
	}, nil
}

// ValidateFor checks whether the coupon may be redeemed by the customer.
// An expired coupon is always rejected regardless of remaining uses.
func (c *Coupon) ValidateFor(customerCode string, now time.Time, alreadyUsed bool) error {
	if !c.Active {
		return ErrCouponInactive
	}
	if now.After(c.ExpiresAt) {
		return ErrCouponExpired
	}
	if c.Type == CouponIndividual && c.CustomerCode != customerCode {
		return ErrCouponNotAssigned
	}
	if alreadyUsed {
		return ErrCouponAlreadyUsed
	}
	if c.UsageCap > 0 && c.UsedCount >= c.UsageCap {
		return ErrCouponExhausted
	}
	return nil
}

// DiscountOn computes the discount amount for a subtotal, capped at the
// subtotal itself.
func (c *Coupon) DiscountOn(subtotal decimal.Decimal) decimal.Decimal {
	var discount decimal.Decimal
	switch c.Kind {
	case DiscountPercent:
		discount = subtotal.Mul(c.Value).Div(decimal.NewFromInt(100)).Round(2)
	case DiscountFlat:
		discount = c.Value
	}
	if discount.GreaterThan(subtotal) {
		return subtotal
	}
	return discount
}

// Usage records one redemption of a coupon by a customer
type Usage struct {
	shared.BaseEntity
	CouponID     uuid.UUID
	CustomerCode string
	OrderID      uuid.UUID
}

// NewUsage creates a usage record
func NewUsage(couponID uuid.UUID, customerCode string, orderID uuid.UUID) *Usage {
	return &Usage{
		BaseEntity:   shared.NewBaseEntity(),
		CouponID:     couponID,
		CustomerCode: customerCode,
		OrderID:      orderID,
	}
}
