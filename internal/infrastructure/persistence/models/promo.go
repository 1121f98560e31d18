package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopfront/backend/internal/domain/promo"
)

// CouponModel is the persistence model for the Coupon domain entity.
type CouponModel struct {
	BaseModel
	Code         string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Type         string          `gorm:"type:varchar(20);not null"`
	Kind         string          `gorm:"type:varchar(20);not null"`
	Value        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	UsageCap     int             `gorm:"not null;default:0"`
	UsedCount    int             `gorm:"not null;default:0"`
	ExpiresAt    time.Time       `gorm:"not null"`
	CustomerCode string          `gorm:"type:varchar(50)"`
	Active       bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (CouponModel) TableName() string {
	return "coupons"
}

// ToDomain converts the persistence model to a domain Coupon entity.
func (m *CouponModel) ToDomain() *promo.Coupon {
	return &promo.Coupon{
		BaseEntity:   m.BaseModel.ToDomain(),
		Code:         m.Code,
		Type:         promo.CouponType(m.Type),
		Kind:         promo.DiscountKind(m.Kind),
		Value:        m.Value,
		UsageCap:     m.UsageCap,
		UsedCount:    m.UsedCount,
		ExpiresAt:    m.ExpiresAt,
		CustomerCode: m.CustomerCode,
		Active:       m.Active,
	}
}

// FromDomain populates the persistence model from a domain Coupon entity.
func (m *CouponModel) FromDomain(c *promo.Coupon) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.Code = c.Code
	m.Type = string(c.Type)
	m.Kind = string(c.Kind)
	m.Value = c.Value
	m.UsageCap = c.UsageCap
	m.UsedCount = c.UsedCount
	m.ExpiresAt = c.ExpiresAt
	m.CustomerCode = c.CustomerCode
	m.Active = c.Active
}

// CouponUsageModel records one redemption of a coupon by a customer.
type CouponUsageModel struct {
	BaseModel
	CouponID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_coupon_usage,priority:1"`
	CustomerCode string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_coupon_usage,priority:2"`
	OrderID      uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (CouponUsageModel) TableName() string {
	return "coupon_usages"
}

// ToDomain converts the persistence model to a domain Usage entity.
func (m *CouponUsageModel) ToDomain() *promo.Usage {
	return &promo.Usage{
		BaseEntity:   m.BaseModel.ToDomain(),
		CouponID:     m.CouponID,
		CustomerCode: m.CustomerCode,
		OrderID:      m.OrderID,
	}
}

// FromDomain populates the persistence model from a domain Usage entity.
func (m *CouponUsageModel) FromDomain(u *promo.Usage) {
	m.FromDomainBaseEntity(u.BaseEntity)
	m.CouponID = u.CouponID
	m.CustomerCode = u.CustomerCode
	m.OrderID = u.OrderID
}
