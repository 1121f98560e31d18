package feedback

import (
	"context"

	"github.com/google/uuid"

	"github.com/shopfront/backend/internal/domain/shared"
)

// Feedback is the one-per-order post-delivery review, gated behind a signed
// token tied to the order and customer.
type Feedback struct {
	shared.BaseEntity
	OrderID        uuid.UUID
	CustomerCode   string
	FitRating      int
	QualityRating  int
	DeliveryRating int
	OverallRating  int
	Comments       string
}

// NewFeedback creates feedback for a delivered order. All four ratings must
// be between 1 and 5.
func NewFeedback(orderID uuid.UUID, customerCode string, fit, quality, delivery, overall int, comments string) (*Feedback, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order ID cannot be empty")
	}
	for _, r := range []int{fit, quality, delivery, overall} {
		if r < 1 || r > 5 {
			return nil, shared.NewDomainError("INVALID_RATING", "Ratings must be between 1 and 5")
		}
	}

	return &Feedback{
		BaseEntity:     shared.NewBaseEntity(),
		OrderID:        orderID,
		CustomerCode:   customerCode,
		FitRating:      fit,
		QualityRating:  quality,
		DeliveryRating: delivery,
		OverallRating:  overall,
		Comments:       comments,
	}, nil
}

// Repository defines persistence operations for feedback
type Repository interface {
	FindByOrderID(ctx context.Context, orderID uuid.UUID) (*Feedback, error)
	ExistsByOrderID(ctx context.Context, orderID uuid.UUID) (bool, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Feedback, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, f *Feedback) error
}
