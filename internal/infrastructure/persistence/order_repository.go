package persistence

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/domain/order"
	"github.com/shopfront/backend/internal/domain/promo"
	"github.com/shopfront/backend/internal/domain/shared"
	"github.com/shopfront/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormOrderRepository implements order.Repository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by its ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNumber finds an order by its order number
func (r *GormOrderRepository) FindByNumber(ctx context.Context, number string) (*order.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("number = ?", strings.ToUpper(number)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all orders matching the filter
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]order.Order, error) {
	var orderModels []models.OrderModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.OrderModel{}).Preload("Items"), filter)

	if err := query.Find(&orderModels).Error; err != nil {
		return nil, err
	}

	orders := make([]order.Order, len(orderModels))
	for i, model := range orderModels {
		orders[i] = *model.ToDomain()
	}
	return orders, nil
}

// Count counts orders matching the filter
func (r *GormOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.OrderModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an order together with its items
func (r *GormOrderRepository) Save(ctx context.Context, o *order.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.saveTx(tx, o)
	})
}

// SaveWithShipment saves an order and its shipment record in a single transaction
func (r *GormOrderRepository) SaveWithShipment(ctx context.Context, o *order.Order, s *order.Shipment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.saveTx(tx, o); err != nil {
			return err
		}
		var shipModel models.ShipmentModel
		shipModel.FromDomain(s)
		return tx.Save(&shipModel).Error
	})
}

// PlaceOrder persists the order, its shipment, and an optional coupon
// redemption in one transaction. A failed usage write rolls back the order,
// so a coupon is never consumed without its order and vice versa.
func (r *GormOrderRepository) PlaceOrder(ctx context.Context, o *order.Order, s *order.Shipment, usage *promo.Usage) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.saveTx(tx, o); err != nil {
			return err
		}
		var shipModel models.ShipmentModel
		shipModel.FromDomain(s)
		if err := tx.Save(&shipModel).Error; err != nil {
			return err
		}
		if usage == nil {
			return nil
		}
		return redeemTx(tx, usage)
	})
}

func (r *GormOrderRepository) saveTx(tx *gorm.DB, o *order.Order) error {
	var model models.OrderModel
	model.FromDomain(o)

	// Save without the association first, then reconcile items by hand
	// so removed lines are deleted.
	items := model.Items
	model.Items = nil
	if err := tx.Omit("Items").Save(&model).Error; err != nil {
		return err
	}

	currentItemIDs := make([]uuid.UUID, len(items))
	for i, item := range items {
		currentItemIDs[i] = item.ID
	}

	if len(currentItemIDs) > 0 {
		if err := tx.Where("order_id = ? AND id NOT IN ?", model.ID, currentItemIDs).
			Delete(&models.OrderItemModel{}).Error; err != nil {
			return err
		}
	} else {
		if err := tx.Where("order_id = ?", model.ID).
			Delete(&models.OrderItemModel{}).Error; err != nil {
			return err
		}
	}

	for i := range items {
		items[i].OrderID = model.ID
		if err := tx.Save(&items[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// Delete deletes an order and, by cascade, its items
func (r *GormOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.OrderModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// BulkDelete deletes multiple orders by ID
func (r *GormOrderRepository) BulkDelete(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).Delete(&models.OrderModel{}, "id IN ?", ids)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// GenerateNumber generates the next order number in the ORD-YYYYMM-NNNN sequence.
// The sequence restarts every month.
func (r *GormOrderRepository) GenerateNumber(ctx context.Context) (string, error) {
	prefix := fmt.Sprintf("ORD-%s-", time.Now().Format("200601"))

	var lastOrder models.OrderModel
	err := r.db.WithContext(ctx).
		Where("number LIKE ?", prefix+"%").
		Order("number DESC").
		First(&lastOrder).Error

	nextNum := 1
	if err == nil && lastOrder.Number != "" {
		parts := strings.Split(lastOrder.Number, "-")
		if len(parts) == 3 {
			if n, parseErr := strconv.Atoi(parts[2]); parseErr == nil {
				nextNum = n + 1
			}
		}
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	number := fmt.Sprintf("%s%04d", prefix, nextNum)

	// Guard against gaps introduced by manual inserts.
	for attempts := 0; attempts < 10; attempts++ {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&models.OrderModel{}).
			Where("number = ?", number).
			Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return number, nil
		}
		nextNum++
		number = fmt.Sprintf("%s%04d", prefix, nextNum)
	}
	return "", shared.NewDomainError("ORDER_NUMBER_EXHAUSTED", "Unable to generate a unique order number")
}

// applyFilter applies filter options to the query
func (r *GormOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
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

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormOrderRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("number ILIKE ? OR customer_name ILIKE ? OR customer_code ILIKE ? OR email ILIKE ?",
			searchPattern, searchPattern, searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "payment_status":
			query = query.Where("payment_status = ?", value)
		case "customer_code":
			query = query.Where("customer_code = ?", value)
		case "coupon_code":
			query = query.Where("coupon_code = ?", value)
		case "archived":
			query = query.Where("archived = ?", value)
		case "created_after":
			query = query.Where("created_at >= ?", value)
		case "created_before":
			query = query.Where("created_at < ?", value)
		}
	}

	return query
}

// Ensure GormOrderRepository implements order.Repository
var _ order.Repository = (*GormOrderRepository)(nil)
