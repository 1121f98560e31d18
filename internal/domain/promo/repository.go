package promo

import (
	"context"

	"github.com/google/uuid"

	"github.com/shopfront/backend/internal/domain/shared"
)

// Repository defines persistence operations for coupons and their usage
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Coupon, error)
	FindByCode(ctx context.Context, code string) (*Coupon, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Coupon, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, c *Coupon) error
	Delete(ctx context.Context, id uuid.UUID) error
	// HasUsage reports whether the customer has already redeemed the coupon
	HasUsage(ctx context.Context, couponID uuid.UUID, customerCode string) (bool, error)
}
