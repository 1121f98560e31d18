package customer

import (
	"context"

	"go.uber.org/zap"

	"github.com/shopfront/backend/internal/domain/customer"
)

// SubscribeRequest is a newsletter opt-in from the storefront footer
type SubscribeRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// NewsletterService records standalone newsletter signups. Customers who opt
// in at checkout carry the flag on their own record instead.
type NewsletterService struct {
	subscriberRepo customer.SubscriberRepository
	logger         *zap.Logger
}

// NewNewsletterService creates a new newsletter service
func NewNewsletterService(subscriberRepo customer.SubscriberRepository, logger *zap.Logger) *NewsletterService {
	return &NewsletterService{subscriberRepo: subscriberRepo, logger: logger}
}

// Subscribe adds the address to the newsletter. Subscribing an address that
// is already on the list succeeds without side effects.
func (s *NewsletterService) Subscribe(ctx context.Context, req *SubscribeRequest) error {
	sub, err := customer.NewSubscriber(req.Email)
	if err != nil {
		return err
	}

	exists, err := s.subscriberRepo.ExistsByEmail(ctx, sub.Email)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	if err := s.subscriberRepo.Save(ctx, sub); err != nil {
		return err
	}
	s.logger.Info("newsletter signup", zap.String("email", sub.Email))
	return nil
}

// Unsubscribe removes the address from the standalone list
func (s *NewsletterService) Unsubscribe(ctx context.Context, email string) error {
	sub, err := customer.NewSubscriber(email)
	if err != nil {
		return err
	}
	return s.subscriberRepo.DeleteByEmail(ctx, sub.Email)
}
