package promo

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopfront/backend/internal/domain/promo"
	"github.com/shopfront/backend/internal/domain/shared"
)

// CouponService provides back-office coupon management
type CouponService struct {
	couponRepo promo.Repository
}

// NewCouponService creates a new coupon service
func NewCouponService(couponRepo promo.Repository) *CouponService {
	return &CouponService{couponRepo: couponRepo}
}

// Create registers a new coupon. Codes are stored uppercase and must be
// unique.
func (s *CouponService) Create(ctx context.Context, req *CreateCouponRequest) (*CouponResponse, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))

	existing, err := s.couponRepo.FindByCode(ctx, code)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("DUPLICATE_CODE", "A coupon with this code already exists")
	}

	c, err := promo.NewCoupon(code, promo.CouponType(req.Type), promo.DiscountKind(req.Kind),
		req.Value, req.UsageCap, req.ExpiresAt, req.CustomerCode)
	if err != nil {
		return nil, err
	}
	if err := s.couponRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	return ToCouponResponse(c), nil
}

// Get returns a coupon by ID
func (s *CouponService) Get(ctx context.Context, id uuid.UUID) (*CouponResponse, error) {
	c, err := s.couponRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToCouponResponse(c), nil
}

// List returns coupons matching the filter, paginated
func (s *CouponService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[*CouponResponse], error) {
	coupons, err := s.couponRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.couponRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]*CouponResponse, len(coupons))
	for i := range coupons {
		responses[i] = ToCouponResponse(&coupons[i])
	}
	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Update applies a partial update. The code, type, and kind of an existing
// coupon are immutable; issue a new coupon instead.
func (s *CouponService) Update(ctx context.Context, id uuid.UUID, req *UpdateCouponRequest) (*CouponResponse, error) {
	c, err := s.couponRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Value != nil {
		if req.Value.LessThanOrEqual(decimal.Zero) {
			return nil, shared.NewDomainError("INVALID_DISCOUNT_VALUE", "Discount value must be positive")
		}
		c.Value = *req.Value
	}
	if req.UsageCap != nil {
		c.UsageCap = *req.UsageCap
	}
	if req.ExpiresAt != nil {
		c.ExpiresAt = *req.ExpiresAt
	}
	if req.Active != nil {
		c.Active = *req.Active
	}
	c.Touch()

	if err := s.couponRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	return ToCouponResponse(c), nil
}

// Delete removes a coupon
func (s *CouponService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.couponRepo.Delete(ctx, id)
}
