package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/domain/promo"
	"github.com/shopfront/backend/internal/domain/shared"
	"github.com/shopfront/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCouponRepository implements promo.Repository using GORM
type GormCouponRepository struct {
	db *gorm.DB
}

// NewGormCouponRepository creates a new GormCouponRepository
func NewGormCouponRepository(db *gorm.DB) *GormCouponRepository {
	return &GormCouponRepository{db: db}
}

// FindByID finds a coupon by its ID
func (r *GormCouponRepository) FindByID(ctx context.Context, id uuid.UUID) (*promo.Coupon, error) {
	var model models.CouponModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds a coupon by its code
func (r *GormCouponRepository) FindByCode(ctx context.Context, code string) (*promo.Coupon, error) {
	var model models.CouponModel
	if err := r.db.WithContext(ctx).
		Where("code = ?", strings.ToUpper(code)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all coupons matching the filter
func (r *GormCouponRepository) FindAll(ctx context.Context, filter shared.Filter) ([]promo.Coupon, error) {
	var couponModels []models.CouponModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.CouponModel{}), filter)

	if err := query.Find(&couponModels).Error; err != nil {
		return nil, err
	}

	coupons := make([]promo.Coupon, len(couponModels))
	for i, model := range couponModels {
		coupons[i] = *model.ToDomain()
	}
	return coupons, nil
}

// Count counts coupons matching the filter
func (r *GormCouponRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.CouponModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a coupon
func (r *GormCouponRepository) Save(ctx context.Context, c *promo.Coupon) error {
	var model models.CouponModel
	model.FromDomain(c)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete deletes a coupon
func (r *GormCouponRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CouponModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// HasUsage checks whether a customer has already redeemed a coupon
func (r *GormCouponRepository) HasUsage(ctx context.Context, couponID uuid.UUID, customerCode string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.CouponUsageModel{}).
		Where("coupon_id = ? AND customer_code = ?", couponID, customerCode).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// redeemTx records a coupon usage and increments the coupon's used count
// inside the caller's transaction. GormOrderRepository.PlaceOrder runs it in
// the order transaction so a checkout commits the order and the redemption
// together. The unique index on (coupon_id, customer_code) rejects a double
// redemption racing past the HasUsage check.
func redeemTx(tx *gorm.DB, usage *promo.Usage) error {
	var model models.CouponUsageModel
	model.FromDomain(usage)
	if err := tx.Create(&model).Error; err != nil {
		return err
	}
	result := tx.Model(&models.CouponModel{}).
		Where("id = ?", usage.CouponID).
		UpdateColumn("used_count", gorm.Expr("used_count + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormCouponRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
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

func (r *GormCouponRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("code ILIKE ? OR customer_code ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "type":
			query = query.Where("type = ?", value)
		case "kind":
			query = query.Where("kind = ?", value)
		case "active":
			query = query.Where("active = ?", value)
		case "customer_code":
			query = query.Where("customer_code = ?", value)
		}
	}

	return query
}

// Ensure GormCouponRepository implements promo.Repository
var _ promo.Repository = (*GormCouponRepository)(nil)
