package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/domain/feedback"
	"github.com/shopfront/backend/internal/domain/shared"
	"github.com/shopfront/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormFeedbackRepository implements feedback.Repository using GORM
type GormFeedbackRepository struct {
	db *gorm.DB
}

// NewGormFeedbackRepository creates a new GormFeedbackRepository
func NewGormFeedbackRepository(db *gorm.DB) *GormFeedbackRepository {
	return &GormFeedbackRepository{db: db}
}

// FindByOrderID finds the feedback submitted for an order
func (r *GormFeedbackRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) (*feedback.Feedback, error) {
	var model models.FeedbackModel
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ExistsByOrderID checks whether feedback was already submitted for an order
func (r *GormFeedbackRepository) ExistsByOrderID(ctx context.Context, orderID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.FeedbackModel{}).
		Where("order_id = ?", orderID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindAll finds all feedback entries matching the filter
func (r *GormFeedbackRepository) FindAll(ctx context.Context, filter shared.Filter) ([]feedback.Feedback, error) {
	var feedbackModels []models.FeedbackModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.FeedbackModel{}), filter)

	if err := query.Find(&feedbackModels).Error; err != nil {
		return nil, err
	}

	entries := make([]feedback.Feedback, len(feedbackModels))
	for i, model := range feedbackModels {
		entries[i] = *model.ToDomain()
	}
	return entries, nil
}

// Count counts feedback entries matching the filter
func (r *GormFeedbackRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.FeedbackModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a feedback entry. A concurrent submission racing
// past the existence check hits the unique order_id index and surfaces as
// ErrAlreadyExists.
func (r *GormFeedbackRepository) Save(ctx context.Context, f *feedback.Feedback) error {
	var model models.FeedbackModel
	model.FromDomain(f)
	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *GormFeedbackRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

func (r *GormFeedbackRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("customer_code ILIKE ? OR comments ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "customer_code":
			query = query.Where("customer_code = ?", value)
		case "overall_rating":
			query = query.Where("overall_rating = ?", value)
		case "min_overall_rating":
			query = query.Where("overall_rating >= ?", value)
		}
	}

	return query
}

// Ensure GormFeedbackRepository implements feedback.Repository
var _ feedback.Repository = (*GormFeedbackRepository)(nil)
