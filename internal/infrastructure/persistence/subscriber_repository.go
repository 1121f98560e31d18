package persistence

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shopfront/backend/internal/domain/customer"
	"github.com/shopfront/backend/internal/domain/shared"
	"github.com/shopfront/backend/internal/infrastructure/persistence/models"
)

// GormSubscriberRepository implements customer.SubscriberRepository using GORM
type GormSubscriberRepository struct {
	db *gorm.DB
}

// NewGormSubscriberRepository creates a new GORM subscriber repository
func NewGormSubscriberRepository(db *gorm.DB) *GormSubscriberRepository {
	return &GormSubscriberRepository{db: db}
}

// ExistsByEmail checks whether the address is already subscribed
func (r *GormSubscriberRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if email == "" {
		return false, shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&models.SubscriberModel{}).
		Where("email = ?", strings.ToLower(email)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindAll returns every standalone subscriber
func (r *GormSubscriberRepository) FindAll(ctx context.Context) ([]customer.Subscriber, error) {
	var subscriberModels []models.SubscriberModel
	err := r.db.WithContext(ctx).Order("email ASC").Find(&subscriberModels).Error
	if err != nil {
		return nil, err
	}

	subscribers := make([]customer.Subscriber, len(subscriberModels))
	for i, m := range subscriberModels {
		subscribers[i] = *m.ToDomain()
	}
	return subscribers, nil
}

// Save upserts a subscriber. Re-subscribing an existing address is a no-op.
func (r *GormSubscriberRepository) Save(ctx context.Context, s *customer.Subscriber) error {
	var model models.SubscriberModel
	model.FromDomain(s)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoNothing: true,
		}).
		Create(&model).Error
}

// DeleteByEmail removes a subscriber (unsubscribe)
func (r *GormSubscriberRepository) DeleteByEmail(ctx context.Context, email string) error {
	return r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(email)).
		Delete(&models.SubscriberModel{}).Error
}

// Ensure GormSubscriberRepository implements customer.SubscriberRepository
var _ customer.SubscriberRepository = (*GormSubscriberRepository)(nil)
