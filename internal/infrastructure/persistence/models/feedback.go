package models

import (
	"github.com/google/uuid"

	"github.com/shopfront/backend/internal/domain/feedback"
)

// FeedbackModel is the persistence model for the Feedback domain entity.
// The unique index on OrderID backs the one-submission-per-order rule.
type FeedbackModel struct {
	BaseModel
	OrderID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	CustomerCode   string    `gorm:"type:varchar(50);not null;index"`
	FitRating      int       `gorm:"not null"`
	QualityRating  int       `gorm:"not null"`
	DeliveryRating int       `gorm:"not null"`
	OverallRating  int       `gorm:"not null"`
	Comments       string    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (FeedbackModel) TableName() string {
	return "feedback"
}

// ToDomain converts the persistence model to a domain Feedback entity.
func (m *FeedbackModel) ToDomain() *feedback.Feedback {
	return &feedback.Feedback{
		BaseEntity:     m.BaseModel.ToDomain(),
		OrderID:        m.OrderID,
		CustomerCode:   m.CustomerCode,
		FitRating:      m.FitRating,
		QualityRating:  m.QualityRating,
		DeliveryRating: m.DeliveryRating,
		OverallRating:  m.OverallRating,
		Comments:       m.Comments,
	}
}

// FromDomain populates the persistence model from a domain Feedback entity.
func (m *FeedbackModel) FromDomain(f *feedback.Feedback) {
	m.FromDomainBaseEntity(f.BaseEntity)
	m.OrderID = f.OrderID
	m.CustomerCode = f.CustomerCode
	m.FitRating = f.FitRating
	m.QualityRating = f.QualityRating
	m.DeliveryRating = f.DeliveryRating
	m.OverallRating = f.OverallRating
	m.Comments = f.Comments
}
