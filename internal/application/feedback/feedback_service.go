package feedback

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/shopfront/backend/internal/domain/feedback"
	"github.com/shopfront/backend/internal/domain/order"
	"github.com/shopfront/backend/internal/domain/shared"
	"github.com/shopfront/backend/internal/infrastructure/auth"
)

var (
	// ErrAlreadySubmitted means feedback already exists for the order
	ErrAlreadySubmitted = shared.NewDomainError("ALREADY_SUBMITTED", "Feedback has already been submitted for this order")
	// ErrInvalidToken means the feedback link is malformed, tampered with, or expired
	ErrInvalidToken = shared.NewDomainError("INVALID_TOKEN", "This feedback link is invalid or has expired")
)

// FeedbackService drives the token-gated post-delivery feedback flow
type FeedbackService struct {
	feedbackRepo feedback.Repository
	orderRepo    order.Repository
	tokens       *auth.FeedbackTokenService
	logger       *zap.Logger
}

// NewFeedbackService creates a new feedback service
func NewFeedbackService(feedbackRepo feedback.Repository, orderRepo order.Repository, tokens *auth.FeedbackTokenService, logger *zap.Logger) *FeedbackService {
	return &FeedbackService{
		feedbackRepo: feedbackRepo,
		orderRepo:    orderRepo,
		tokens:       tokens,
		logger:       logger,
	}
}

// GetOrderSummary verifies the token and returns the order recap shown above
// the feedback form. Fails if feedback was already submitted.
func (s *FeedbackService) GetOrderSummary(ctx context.Context, token string) (*OrderSummaryResponse, error) {
	o, _, err := s.resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	return ToOrderSummaryResponse(o), nil
}

// Submit verifies the token and records the feedback. A second submission
// for the same order is rejected.
func (s *FeedbackService) Submit(ctx context.Context, token string, req *SubmitFeedbackRequest) (*FeedbackResponse, error) {
	o, customerCode, err := s.resolve(ctx, token)
	if err != nil {
		return nil, err
	}

	f, err := feedback.NewFeedback(o.ID, customerCode,
		req.FitRating, req.QualityRating, req.DeliveryRating, req.OverallRating, req.Comments)
	if err != nil {
		return nil, err
	}
	if err := s.feedbackRepo.Save(ctx, f); err != nil {
		// Two submissions racing past the existence check collide on the
		// unique order index; the loser gets the same answer as a repeat.
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, ErrAlreadySubmitted
		}
		return nil, err
	}

	s.logger.Info("feedback submitted",
		zap.String("order_number", o.Number),
		zap.Int("overall_rating", f.OverallRating))
	return ToFeedbackResponse(f), nil
}

// List returns stored feedback for the back office, paginated
func (s *FeedbackService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[*FeedbackResponse], error) {
	items, err := s.feedbackRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.feedbackRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]*FeedbackResponse, len(items))
	for i := range items {
		responses[i] = ToFeedbackResponse(&items[i])
	}
	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

func (s *FeedbackService) resolve(ctx context.Context, token string) (*order.Order, string, error) {
	orderID, customerCode, err := s.tokens.Verify(token)
	if err != nil {
		return nil, "", ErrInvalidToken
	}

	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, "", err
	}
	// a token for someone else's order is as good as a forged one
	if customerCode != "" && o.CustomerCode != customerCode {
		return nil, "", ErrInvalidToken
	}

	exists, err := s.feedbackRepo.ExistsByOrderID(ctx, o.ID)
	if err != nil {
		return nil, "", err
	}
	if exists {
		return nil, "", ErrAlreadySubmitted
	}
	return o, customerCode, nil
}
