package order

import (
	"time"

	"github.com/google/uuid"

	"github.com/shopfront/backend/internal/domain/shared"
)

// Shipment tracks the physical fulfillment of an order. One shipment is
// created eagerly per order and its status mirrors the order's fulfillment
// stage; both records are written in the same transaction.
type Shipment struct {
	shared.BaseEntity
	OrderID           uuid.UUID
	OrderNumber       string
	CustomerCode      string
	Status            Status
	TrackingID        string
	Carrier           string
	PackagingProvider string
	FulfilledAt       *time.Time
	ShippedAt         *time.Time
	OutForDeliveryAt  *time.Time
	DeliveredAt       *time.Time
}

// NewShipment creates the shipment record for a freshly created order
func NewShipment(o *Order) (*Shipment, error) {
	if o == nil || o.ID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Shipment requires a saved order")
	}
	return &Shipment{
		BaseEntity:   shared.NewBaseEntity(),
		OrderID:      o.ID,
		OrderNumber:  o.Number,
		CustomerCode: o.CustomerCode,
		Status:       o.Status,
	}, nil
}

// SyncWith aligns the shipment's status and stage timestamps with the order
func (s *Shipment) SyncWith(o *Order) {
	s.Status = o.Status
	s.FulfilledAt = o.FulfilledAt
	s.ShippedAt = o.ShippedAt
	s.OutForDeliveryAt = o.OutForDeliveryAt
	s.DeliveredAt = o.DeliveredAt
	s.Touch()
}

// SetTracking records carrier metadata supplied at ship time
func (s *Shipment) SetTracking(trackingID, carrier, packagingProvider string) {
	if trackingID != "" {
		s.TrackingID = trackingID
	}
	if carrier != "" {
		s.Carrier = carrier
	}
	if packagingProvider != "" {
		s.PackagingProvider = packagingProvider
	}
	s.Touch()
}
