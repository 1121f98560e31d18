package promo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopfront/backend/internal/domain/promo"
)

// CreateCouponRequest represents a request to create a coupon
type CreateCouponRequest struct {
	Code         string          `json:"code" binding:"required,min=3,max=40"`
	Type         string          `json:"type" binding:"required,oneof=global individual"`
	Kind         string          `json:"kind" binding:"required,oneof=percent flat"`
	Value        decimal.Decimal `json:"value" binding:"required"`
	UsageCap     int             `json:"usage_cap" binding:"min=0"`
	ExpiresAt    time.Time       `json:"expires_at" binding:"required"`
	CustomerCode string          `json:"customer_code"`
}

// UpdateCouponRequest represents a partial coupon update
type UpdateCouponRequest struct {
	Value     *decimal.Decimal `json:"value"`
	UsageCap  *int             `json:"usage_cap" binding:"omitempty,min=0"`
	ExpiresAt *time.Time       `json:"expires_at"`
	Active    *bool            `json:"active"`
}

// CouponResponse represents a coupon in API responses
type CouponResponse struct {
	ID           uuid.UUID       `json:"id"`
	Code         string          `json:"code"`
	Type         string          `json:"type"`
	Kind         string          `json:"kind"`
	Value        decimal.Decimal `json:"value"`
	UsageCap     int             `json:"usage_cap"`
	UsedCount    int             `json:"used_count"`
	ExpiresAt    time.Time       `json:"expires_at"`
	CustomerCode string          `json:"customer_code,omitempty"`
	Active       bool            `json:"active"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ToCouponResponse converts a domain coupon to its response shape
func ToCouponResponse(c *promo.Coupon) *CouponResponse {
	return &CouponResponse{
		ID:           c.ID,
		Code:         c.Code,
		Type:         string(c.Type),
		Kind:         string(c.Kind),
		Value:        c.Value,
		UsageCap:     c.UsageCap,
		UsedCount:    c.UsedCount,
		ExpiresAt:    c.ExpiresAt,
		CustomerCode: c.CustomerCode,
		Active:       c.Active,
		CreatedAt:    c.CreatedAt,
	}
}
