package customer

import (
	"context"
	"strings"

	"github.com/shopfront/backend/internal/domain/shared"
)

// Subscriber is a standalone newsletter signup not (yet) tied to a customer
// record. Customers who opt in at checkout carry the flag directly.
type Subscriber struct {
	shared.BaseEntity
	Email string
}

// NewSubscriber creates a newsletter subscriber. The address is lowercased.
func NewSubscriber(email string) (*Subscriber, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Invalid email address")
	}
	return &Subscriber{
		BaseEntity: shared.NewBaseEntity(),
		Email:      email,
	}, nil
}

// SubscriberRepository defines persistence operations for newsletter signups
type SubscriberRepository interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	FindAll(ctx context.Context) ([]Subscriber, error)
	Save(ctx context.Context, s *Subscriber) error
	DeleteByEmail(ctx context.Context, email string) error
}
