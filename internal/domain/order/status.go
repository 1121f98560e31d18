package order

// PaymentStatus represents how an order was (or will be) paid
type PaymentStatus string

const (
	PaymentPrepaid PaymentStatus = "prepaid"
	PaymentUnpaid  PaymentStatus = "unpaid"
)

// IsValid checks if the payment status is a known value
func (p PaymentStatus) IsValid() bool {
	switch p {
	case PaymentPrepaid, PaymentUnpaid:
		return true
	}
	return false
}

// Status represents the fulfillment stage of an order.
// The same enum is shared by Order and Shipment so the two records can
// never disagree on the label set.
type Status string

const (
	StatusPending        Status = "pending"
	StatusFulfilled      Status = "fulfilled"
	StatusShipped        Status = "shipped"
	StatusOutForDelivery Status = "outForDelivery"
	StatusDelivered      Status = "delivered"
)

// AllStatuses lists the fulfillment stages in lifecycle order
var AllStatuses = []Status{
	StatusPending,
	StatusFulfilled,
	StatusShipped,
	StatusOutForDelivery,
	StatusDelivered,
}

// IsValid checks if the status is a valid fulfillment stage
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusFulfilled, StatusShipped, StatusOutForDelivery, StatusDelivered:
		return true
	}
	return false
}

// String returns the string representation of the status
func (s Status) String() string {
	return string(s)
}

// Rank returns the position of the status in the linear lifecycle,
// starting at 0 for pending. Unknown statuses rank -1.
func (s Status) Rank() int {
	for i, st := range AllStatuses {
		if st == s {
			return i
		}
	}
	return -1
}

// IsForwardOf reports whether s is a later stage than other
func (s Status) IsForwardOf(other Status) bool {
	return s.Rank() > other.Rank()
}
