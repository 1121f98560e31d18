package models

import (
	"github.com/shopfront/backend/internal/domain/customer"
)

// SubscriberModel is the persistence model for standalone newsletter signups
type SubscriberModel struct {
	BaseModel
	Email string `gorm:"type:varchar(255);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (SubscriberModel) TableName() string {
	return "newsletter_subscribers"
}

// ToDomain converts the persistence model to a domain Subscriber
func (m *SubscriberModel) ToDomain() *customer.Subscriber {
	return &customer.Subscriber{
		BaseEntity: m.BaseModel.ToDomain(),
		Email:      m.Email,
	}
}

// FromDomain populates the persistence model from a domain Subscriber
func (m *SubscriberModel) FromDomain(s *customer.Subscriber) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.Email = s.Email
}
