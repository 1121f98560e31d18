package persistence

import (
	"context"
	"time"

	"github.com/shopfront/backend/internal/domain/order"
	"github.com/shopfront/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormAnalyticsRepository implements order.AnalyticsRepository using GORM
type GormAnalyticsRepository struct {
	db *gorm.DB
}

// NewGormAnalyticsRepository creates a new GormAnalyticsRepository
func NewGormAnalyticsRepository(db *gorm.DB) *GormAnalyticsRepository {
	return &GormAnalyticsRepository{db: db}
}

// CountBetween counts orders created within [from, to)
func (r *GormAnalyticsRepository) CountBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("created_at >= ? AND created_at < ? AND archived = ?", from, to, false).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// RevenueBetween sums order totals for orders created within [from, to)
func (r *GormAnalyticsRepository) RevenueBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Select("COALESCE(SUM(total), 0) AS total").
		Where("created_at >= ? AND created_at < ? AND archived = ?", from, to, false).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// CountByStatus groups orders created within [from, to) by fulfillment stage
func (r *GormAnalyticsRepository) CountByStatus(ctx context.Context, from, to time.Time) ([]order.StatusCount, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Select("status, COUNT(*) AS count").
		Where("created_at >= ? AND created_at < ? AND archived = ?", from, to, false).
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make([]order.StatusCount, len(rows))
	for i, row := range rows {
		counts[i] = order.StatusCount{Status: order.Status(row.Status), Count: row.Count}
	}
	return counts, nil
}

// TopProducts returns the best selling products by quantity within [from, to)
func (r *GormAnalyticsRepository) TopProducts(ctx context.Context, from, to time.Time, limit int) ([]order.ProductSales, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []struct {
		Title    string
		Quantity int64
		Revenue  decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&models.OrderItemModel{}).
		Select("order_items.title, SUM(order_items.quantity) AS quantity, SUM(order_items.subtotal) AS revenue").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.created_at >= ? AND orders.created_at < ? AND orders.archived = ?", from, to, false).
		Group("order_items.title").
		Order("quantity DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	sales := make([]order.ProductSales, len(rows))
	for i, row := range rows {
		sales[i] = order.ProductSales{Title: row.Title, Quantity: row.Quantity, Revenue: row.Revenue}
	}
	return sales, nil
}

// Ensure GormAnalyticsRepository implements order.AnalyticsRepository
var _ order.AnalyticsRepository = (*GormAnalyticsRepository)(nil)
