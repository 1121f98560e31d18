package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopfront/backend/internal/domain/order"
)

// =============================================================================
// Order DTOs
// =============================================================================

// OrderItemRequest is one line of an incoming order
type OrderItemRequest struct {
	Title     string          `json:"title" binding:"required,min=1,max=200"`
	Size      string          `json:"size" binding:"max=20"`
	Quantity  int             `json:"quantity" binding:"required,min=1"`
	UnitPrice decimal.Decimal `json:"unit_price" binding:"required"`
}

// AddressRequest is a shipping address in requests
type AddressRequest struct {
	Line1      string `json:"line1" binding:"required,max=200"`
	Line2      string `json:"line2" binding:"max=200"`
	City       string `json:"city" binding:"required,max=100"`
	State      string `json:"state" binding:"required,max=100"`
	PostalCode string `json:"postal_code" binding:"required,max=20"`
	Country    string `json:"country" binding:"max=100"`
	Phone      string `json:"phone" binding:"required,max=20"`
}

// CreateOrderRequest represents an admin-created order
type CreateOrderRequest struct {
	CustomerCode  string             `json:"customer_code" binding:"required,max=50"`
	CustomerName  string             `json:"customer_name" binding:"required,max=200"`
	Email         string             `json:"email" binding:"required,email,max=200"`
	PaymentStatus string             `json:"payment_status" binding:"required,oneof=prepaid unpaid"`
	Address       AddressRequest     `json:"address" binding:"required"`
	Items         []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	CouponCode    string             `json:"coupon_code" binding:"max=50"`
	Discount      *decimal.Decimal   `json:"discount"`
}

// UpdateOrderRequest updates mutable order fields
type UpdateOrderRequest struct {
	CustomerName *string             `json:"customer_name" binding:"omitempty,min=1,max=200"`
	Email        *string             `json:"email" binding:"omitempty,email,max=200"`
	Address      *AddressRequest     `json:"address"`
	Items        *[]OrderItemRequest `json:"items" binding:"omitempty,min=1,dive"`
	Archived     *bool               `json:"archived"`
}

// StatusRequest moves an order to a fulfillment stage
type StatusRequest struct {
	Status            string `json:"status" binding:"required"`
	Carrier           string `json:"carrier" binding:"max=100"`
	TrackingID        string `json:"tracking_id" binding:"max=100"`
	PackagingProvider string `json:"packaging_provider" binding:"max=100"`
}

// BulkDeleteRequest deletes a set of orders
type BulkDeleteRequest struct {
	IDs []uuid.UUID `json:"ids" binding:"required,min=1"`
}

// OrderItemResponse is one order line in API responses
type OrderItemResponse struct {
	ID        uuid.UUID       `json:"id"`
	Title     string          `json:"title"`
	Size      string          `json:"size"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// AddressResponse is a shipping address in API responses
type AddressResponse struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	Phone      string `json:"phone"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID               uuid.UUID           `json:"id"`
	Number           string              `json:"number"`
	CustomerCode     string              `json:"customer_code"`
	CustomerName     string              `json:"customer_name"`
	Email            string              `json:"email"`
	Address          AddressResponse     `json:"address"`
	Items            []OrderItemResponse `json:"items"`
	Subtotal         decimal.Decimal     `json:"subtotal"`
	Discount         decimal.Decimal     `json:"discount"`
	Total            decimal.Decimal     `json:"total"`
	CouponCode       string              `json:"coupon_code,omitempty"`
	PaymentStatus    string              `json:"payment_status"`
	Status           string              `json:"status"`
	FulfilledAt      *time.Time          `json:"fulfilled_at,omitempty"`
	ShippedAt        *time.Time          `json:"shipped_at,omitempty"`
	OutForDeliveryAt *time.Time          `json:"out_for_delivery_at,omitempty"`
	DeliveredAt      *time.Time          `json:"delivered_at,omitempty"`
	InvoiceNumber    string              `json:"invoice_number,omitempty"`
	Archived         bool                `json:"archived"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

// ShipmentResponse represents a shipment in API responses
type ShipmentResponse struct {
	ID                uuid.UUID  `json:"id"`
	OrderID           uuid.UUID  `json:"order_id"`
	OrderNumber       string     `json:"order_number"`
	CustomerCode      string     `json:"customer_code"`
	Status            string     `json:"status"`
	TrackingID        string     `json:"tracking_id,omitempty"`
	Carrier           string     `json:"carrier,omitempty"`
	PackagingProvider string     `json:"packaging_provider,omitempty"`
	FulfilledAt       *time.Time `json:"fulfilled_at,omitempty"`
	ShippedAt         *time.Time `json:"shipped_at,omitempty"`
	OutForDeliveryAt  *time.Time `json:"out_for_delivery_at,omitempty"`
	DeliveredAt       *time.Time `json:"delivered_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

// ToOrderResponse converts a domain order to its response shape
func ToOrderResponse(o *order.Order) *OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemResponse{
			ID:        item.ID,
			Title:     item.Title,
			Size:      item.Size,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal,
		}
	}
	return &OrderResponse{
		ID:           o.ID,
		Number:       o.Number,
		CustomerCode: o.CustomerCode,
		CustomerName: o.CustomerName,
		Email:        o.Email,
		Address: AddressResponse{
			Line1:      o.ShippingAddress.Line1,
			Line2:      o.ShippingAddress.Line2,
			City:       o.ShippingAddress.City,
			State:      o.ShippingAddress.State,
			PostalCode: o.ShippingAddress.PostalCode,
			Country:    o.ShippingAddress.Country,
			Phone:      o.ShippingAddress.Phone,
		},
		Items:            items,
		Subtotal:         o.Subtotal,
		Discount:         o.Discount,
		Total:            o.Total,
		CouponCode:       o.CouponCode,
		PaymentStatus:    string(o.PaymentStatus),
		Status:           string(o.Status),
		FulfilledAt:      o.FulfilledAt,
		ShippedAt:        o.ShippedAt,
		OutForDeliveryAt: o.OutForDeliveryAt,
		DeliveredAt:      o.DeliveredAt,
		InvoiceNumber:    o.InvoiceNumber,
		Archived:         o.Archived,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
}

// ToShipmentResponse converts a domain shipment to its response shape
func ToShipmentResponse(s *order.Shipment) *ShipmentResponse {
	return &ShipmentResponse{
		ID:                s.ID,
		OrderID:           s.OrderID,
		OrderNumber:       s.OrderNumber,
		CustomerCode:      s.CustomerCode,
		Status:            string(s.Status),
		TrackingID:        s.TrackingID,
		Carrier:           s.Carrier,
		PackagingProvider: s.PackagingProvider,
		FulfilledAt:       s.FulfilledAt,
		ShippedAt:         s.ShippedAt,
		OutForDeliveryAt:  s.OutForDeliveryAt,
		DeliveredAt:       s.DeliveredAt,
		CreatedAt:         s.CreatedAt,
	}
}
