package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopfront/backend/internal/domain/shared"
)

// Address is a snapshot of the shipping address at order time
type Address struct {
	Line1      string
	Line2      string
	City       string
	State      string
	PostalCode string
	Country    string
	Phone      string
}

// Item represents a line item in an order
type Item struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	Title     string
	Size      string
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal // Quantity * UnitPrice
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewItem creates a new order line item
func NewItem(orderID uuid.UUID, title, size string, quantity int, unitPrice decimal.Decimal) (*Item, error) {
	if title == "" {
		return nil, shared.NewDomainError("INVALID_ITEM_TITLE", "Item title cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	now := time.Now()
	qty := decimal.NewFromInt(int64(quantity))
	return &Item{
		ID:        uuid.New(),
		OrderID:   orderID,
		Title:     title,
		Size:      size,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Subtotal:  unitPrice.Mul(qty),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Order represents a customer purchase.
// Totals are always recomputed from line items; client-supplied totals are
// never stored.
type Order struct {
	shared.BaseEntity
	Number           string
	CustomerCode     string
	CustomerName     string
	Email            string
	Items            []Item
	ShippingAddress  Address
	Subtotal         decimal.Decimal
	Discount         decimal.Decimal
	Total            decimal.Decimal // Subtotal - Discount
	CouponCode       string
	PaymentStatus    PaymentStatus
	Status           Status
	FulfilledAt      *time.Time
	ShippedAt        *time.Time
	OutForDeliveryAt *time.Time
	DeliveredAt      *time.Time
	InvoiceNumber    string
	Archived         bool
}

// NewOrder creates a new order in the pending stage
func NewOrder(number, customerCode, customerName, email string, payment PaymentStatus, addr Address) (*Order, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if customerCode == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer code cannot be empty")
	}
	if !payment.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_STATUS", "Payment status must be 'prepaid' or 'unpaid'")
	}

	return &Order{
		BaseEntity:      shared.NewBaseEntity(),
		Number:          number,
		CustomerCode:    customerCode,
		CustomerName:    customerName,
		Email:           email,
		Items:           make([]Item, 0),
		ShippingAddress: addr,
		Subtotal:        decimal.Zero,
		Discount:        decimal.Zero,
		Total:           decimal.Zero,
		PaymentStatus:   payment,
		Status:          StatusPending,
	}, nil
}

// AddItem adds a line item and recomputes the order totals
func (o *Order) AddItem(title, size string, quantity int, unitPrice decimal.Decimal) (*Item, error) {
	item, err := NewItem(o.ID, title, size, quantity, unitPrice)
	if err != nil {
		return nil, err
	}
	o.Items = append(o.Items, *item)
	o.recalculate()
	o.Touch()
	return &o.Items[len(o.Items)-1], nil
}

// ApplyDiscount sets the order-level discount and recomputes the total
func (o *Order) ApplyDiscount(discount decimal.Decimal, couponCode string) error {
	if discount.IsNegative() {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot be negative")
	}
	if discount.GreaterThan(o.Subtotal) {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot exceed the order subtotal")
	}
	o.Discount = discount
	o.CouponCode = couponCode
	o.recalculate()
	o.Touch()
	return nil
}

// recalculate recomputes Subtotal and Total from the line items
func (o *Order) recalculate() {
	subtotal := decimal.Zero
	for _, item := range o.Items {
		subtotal = subtotal.Add(item.Subtotal)
	}
	o.Subtotal = subtotal
	o.Total = subtotal.Sub(o.Discount)
}

// MarkStatus moves the order to the target stage and stamps the stage
// timestamp if it was not set yet. It returns true when the timestamp was
// newly stamped. Repeat calls with the same target keep the first timestamp.
//
// The linear sequence is not enforced here: the admin UI only offers
// forward/backward moves, but the endpoint accepts any valid stage.
func (o *Order) MarkStatus(target Status, now time.Time) (bool, error) {
	if !target.IsValid() {
		return false, shared.NewDomainError("INVALID_STATUS", "Unknown fulfillment status: "+string(target))
	}

	o.Status = target
	o.Touch()

	slot := o.stageTimestamp(target)
	if slot == nil {
		return false, nil // pending has no timestamp
	}
	if *slot != nil {
		return false, nil
	}
	stamped := now
	*slot = &stamped
	return true, nil
}

// stageTimestamp returns a pointer to the timestamp slot for a stage
func (o *Order) stageTimestamp(s Status) **time.Time {
	switch s {
	case StatusFulfilled:
		return &o.FulfilledAt
	case StatusShipped:
		return &o.ShippedAt
	case StatusOutForDelivery:
		return &o.OutForDeliveryAt
	case StatusDelivered:
		return &o.DeliveredAt
	}
	return nil
}

// StageTime returns the timestamp recorded for a stage, or nil
func (o *Order) StageTime(s Status) *time.Time {
	slot := o.stageTimestamp(s)
	if slot == nil {
		return nil
	}
	return *slot
}

// AssignInvoiceNumber sets the invoice number if none is assigned yet.
// Returns true when the number was newly assigned.
func (o *Order) AssignInvoiceNumber(number string) bool {
	if o.InvoiceNumber != "" {
		return false
	}
	o.InvoiceNumber = number
	o.Touch()
	return true
}

// Archive marks the order as archived
func (o *Order) Archive() {
	o.Archived = true
	o.Touch()
}

// ItemCount returns the number of line items
func (o *Order) ItemCount() int {
	return len(o.Items)
}
