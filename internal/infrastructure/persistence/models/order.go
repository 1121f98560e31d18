package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopfront/backend/internal/domain/order"
)

// OrderModel is the persistence model for the Order domain entity.
type OrderModel struct {
	BaseModel
	Number           string           `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerCode     string           `gorm:"type:varchar(50);not null;index"`
	CustomerName     string           `gorm:"type:varchar(200);not null"`
	Email            string           `gorm:"type:varchar(200)"`
	Items            []OrderItemModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	AddressLine1     string           `gorm:"type:varchar(200)"`
	AddressLine2     string           `gorm:"type:varchar(200)"`
	City             string           `gorm:"type:varchar(100)"`
	State            string           `gorm:"type:varchar(100)"`
	PostalCode       string           `gorm:"type:varchar(20)"`
	Country          string           `gorm:"type:varchar(100)"`
	Phone            string           `gorm:"type:varchar(50)"`
	Subtotal         decimal.Decimal  `gorm:"type:decimal(18,2);not null;default:0"`
	Discount         decimal.Decimal  `gorm:"type:decimal(18,2);not null;default:0"`
	Total            decimal.Decimal  `gorm:"type:decimal(18,2);not null;default:0"`
	CouponCode       string           `gorm:"type:varchar(50)"`
	PaymentStatus    string           `gorm:"type:varchar(20);not null;default:'unpaid'"`
	Status           string           `gorm:"type:varchar(30);not null;default:'pending';index"`
	FulfilledAt      *time.Time
	ShippedAt        *time.Time
	OutForDeliveryAt *time.Time
	DeliveredAt      *time.Time
	InvoiceNumber    string `gorm:"type:varchar(50)"`
	Archived         bool   `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel is the persistence model for an order line item.
type OrderItemModel struct {
	BaseModel
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Title     string          `gorm:"type:varchar(200);not null"`
	Size      string          `gorm:"type:varchar(20)"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain converts the persistence model to a domain Order entity.
func (m *OrderModel) ToDomain() *order.Order {
	items := make([]order.Item, len(m.Items))
	for i, im := range m.Items {
		items[i] = order.Item{
			ID:        im.ID,
			OrderID:   im.OrderID,
			Title:     im.Title,
			Size:      im.Size,
			Quantity:  im.Quantity,
			UnitPrice: im.UnitPrice,
			Subtotal:  im.Subtotal,
			CreatedAt: im.CreatedAt,
			UpdatedAt: im.UpdatedAt,
		}
	}

	return &order.Order{
		BaseEntity:   m.BaseModel.ToDomain(),
		Number:       m.Number,
		CustomerCode: m.CustomerCode,
		CustomerName: m.CustomerName,
		Email:        m.Email,
		Items:        items,
		ShippingAddress: order.Address{
			Line1:      m.AddressLine1,
			Line2:      m.AddressLine2,
			City:       m.City,
			State:      m.State,
			PostalCode: m.PostalCode,
			Country:    m.Country,
			Phone:      m.Phone,
		},
		Subtotal:         m.Subtotal,
		Discount:         m.Discount,
		Total:            m.Total,
		CouponCode:       m.CouponCode,
		PaymentStatus:    order.PaymentStatus(m.PaymentStatus),
		Status:           order.Status(m.Status),
		FulfilledAt:      m.FulfilledAt,
		ShippedAt:        m.ShippedAt,
		OutForDeliveryAt: m.OutForDeliveryAt,
		DeliveredAt:      m.DeliveredAt,
		InvoiceNumber:    m.InvoiceNumber,
		Archived:         m.Archived,
	}
}

// FromDomain populates the persistence model from a domain Order entity.
func (m *OrderModel) FromDomain(o *order.Order) {
	m.FromDomainBaseEntity(o.BaseEntity)
	m.Number = o.Number
	m.CustomerCode = o.CustomerCode
	m.CustomerName = o.CustomerName
	m.Email = o.Email
	m.AddressLine1 = o.ShippingAddress.Line1
	m.AddressLine2 = o.ShippingAddress.Line2
	m.City = o.ShippingAddress.City
	m.State = o.ShippingAddress.State
	m.PostalCode = o.ShippingAddress.PostalCode
	m.Country = o.ShippingAddress.Country
	m.Phone = o.ShippingAddress.Phone
	m.Subtotal = o.Subtotal
	m.Discount = o.Discount
	m.Total = o.Total
	m.CouponCode = o.CouponCode
	m.PaymentStatus = string(o.PaymentStatus)
	m.Status = string(o.Status)
	m.FulfilledAt = o.FulfilledAt
	m.ShippedAt = o.ShippedAt
	m.OutForDeliveryAt = o.OutForDeliveryAt
	m.DeliveredAt = o.DeliveredAt
	m.InvoiceNumber = o.InvoiceNumber
	m.Archived = o.Archived

	m.Items = make([]OrderItemModel, len(o.Items))
	for i, item := range o.Items {
		m.Items[i] = OrderItemModel{
			BaseModel: BaseModel{
				ID:        item.ID,
				CreatedAt: item.CreatedAt,
				UpdatedAt: item.UpdatedAt,
			},
			OrderID:   item.OrderID,
			Title:     item.Title,
			Size:      item.Size,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal,
		}
	}
}

// ShipmentModel is the persistence model for the Shipment domain entity.
type ShipmentModel struct {
	BaseModel
	OrderID           uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	OrderNumber       string    `gorm:"type:varchar(50);not null;index"`
	CustomerCode      string    `gorm:"type:varchar(50);not null;index"`
	Status            string    `gorm:"type:varchar(30);not null;default:'pending';index"`
	TrackingID        string    `gorm:"type:varchar(100)"`
	Carrier           string    `gorm:"type:varchar(100)"`
	PackagingProvider string    `gorm:"type:varchar(100)"`
	FulfilledAt       *time.Time
	ShippedAt         *time.Time
	OutForDeliveryAt  *time.Time
	DeliveredAt       *time.Time
}

// TableName returns the table name for GORM
func (ShipmentModel) TableName() string {
	return "shipments"
}

// ToDomain converts the persistence model to a domain Shipment entity.
func (m *ShipmentModel) ToDomain() *order.Shipment {
	return &order.Shipment{
		BaseEntity:        m.BaseModel.ToDomain(),
		OrderID:           m.OrderID,
		OrderNumber:       m.OrderNumber,
		CustomerCode:      m.CustomerCode,
		Status:            order.Status(m.Status),
		TrackingID:        m.TrackingID,
		Carrier:           m.Carrier,
		PackagingProvider: m.PackagingProvider,
		FulfilledAt:       m.FulfilledAt,
		ShippedAt:         m.ShippedAt,
		OutForDeliveryAt:  m.OutForDeliveryAt,
		DeliveredAt:       m.DeliveredAt,
	}
}

// FromDomain populates the persistence model from a domain Shipment entity.
func (m *ShipmentModel) FromDomain(s *order.Shipment) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.OrderID = s.OrderID
	m.OrderNumber = s.OrderNumber
	m.CustomerCode = s.CustomerCode
	m.Status = string(s.Status)
	m.TrackingID = s.TrackingID
	m.Carrier = s.Carrier
	m.PackagingProvider = s.PackagingProvider
	m.FulfilledAt = s.FulfilledAt
	m.ShippedAt = s.ShippedAt
	m.OutForDeliveryAt = s.OutForDeliveryAt
	m.DeliveredAt = s.DeliveredAt
}

// InvoiceModel is the persistence model for generated PDF invoices.
type InvoiceModel struct {
	BaseModel
	Number    string    `gorm:"type:varchar(50);not null;uniqueIndex"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	PDFBase64 string    `gorm:"type:text;not null"`
	ExpiresAt time.Time `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice entity.
func (m *InvoiceModel) ToDomain() *order.Invoice {
	return &order.Invoice{
		BaseEntity: m.BaseModel.ToDomain(),
		Number:     m.Number,
		OrderID:    m.OrderID,
		PDFBase64:  m.PDFBase64,
		ExpiresAt:  m.ExpiresAt,
	}
}

// FromDomain populates the persistence model from a domain Invoice entity.
func (m *InvoiceModel) FromDomain(inv *order.Invoice) {
	m.FromDomainBaseEntity(inv.BaseEntity)
	m.Number = inv.Number
	m.OrderID = inv.OrderID
	m.PDFBase64 = inv.PDFBase64
	m.ExpiresAt = inv.ExpiresAt
}
