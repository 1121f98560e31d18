package order

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopfront/backend/internal/domain/shared"
)

// Repository defines persistence operations for orders
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByNumber(ctx context.Context, number string) (*Order, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, o *Order) error
	// SaveWithShipment persists the order and its shipment atomically
	SaveWithShipment(ctx context.Context, o *Order, s *Shipment) error
	Delete(ctx context.Context, id uuid.UUID) error
	BulkDelete(ctx context.Context, ids []uuid.UUID) (int64, error)
	// GenerateNumber produces the next human-readable order number
	// (ORD-<yearmonth>-<sequence>)
	GenerateNumber(ctx context.Context) (string, error)
}

// ShipmentRepository defines persistence operations for shipments
type ShipmentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Shipment, error)
	FindByOrderID(ctx context.Context, orderID uuid.UUID) (*Shipment, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Shipment, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, s *Shipment) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// InvoiceRepository defines persistence operations for generated invoices
type InvoiceRepository interface {
	FindByOrderID(ctx context.Context, orderID uuid.UUID) (*Invoice, error)
	FindByNumber(ctx context.Context, number string) (*Invoice, error)
	Save(ctx context.Context, inv *Invoice) error
	// DeleteExpired removes invoices whose retention window has passed and
	// returns the number of rows deleted
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// StatusCount is an aggregate of orders per fulfillment stage
type StatusCount struct {
	Status Status
	Count  int64
}

// ProductSales is an aggregate of quantity and revenue per product title
type ProductSales struct {
	Title    string
	Quantity int64
	Revenue  decimal.Decimal
}

// AnalyticsRepository exposes aggregate queries for the admin dashboard
type AnalyticsRepository interface {
	CountBetween(ctx context.Context, from, to time.Time) (int64, error)
	RevenueBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	CountByStatus(ctx context.Context, from, to time.Time) ([]StatusCount, error)
	TopProducts(ctx context.Context, from, to time.Time, limit int) ([]ProductSales, error)
}
