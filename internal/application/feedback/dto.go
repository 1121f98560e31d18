package feedback

import (
	"time"

	"github.com/google/uuid"

	"github.com/shopfront/backend/internal/domain/feedback"
	"github.com/shopfront/backend/internal/domain/order"
)

// SubmitFeedbackRequest carries the four 1-5 ratings and optional comments
type SubmitFeedbackRequest struct {
	FitRating      int    `json:"fit_rating" binding:"required,min=1,max=5"`
	QualityRating  int    `json:"quality_rating" binding:"required,min=1,max=5"`
	DeliveryRating int    `json:"delivery_rating" binding:"required,min=1,max=5"`
	OverallRating  int    `json:"overall_rating" binding:"required,min=1,max=5"`
	Comments       string `json:"comments" binding:"max=2000"`
}

// FeedbackItemSummary is a line item shown on the feedback page
type FeedbackItemSummary struct {
	Title    string `json:"title"`
	Size     string `json:"size,omitempty"`
	Quantity int    `json:"quantity"`
}

// OrderSummaryResponse is the order recap shown before the feedback form
type OrderSummaryResponse struct {
	OrderNumber  string                `json:"order_number"`
	CustomerName string                `json:"customer_name"`
	DeliveredAt  *time.Time            `json:"delivered_at,omitempty"`
	Items        []FeedbackItemSummary `json:"items"`
}

// FeedbackResponse represents stored feedback in API responses
type FeedbackResponse struct {
	ID             uuid.UUID `json:"id"`
	OrderID        uuid.UUID `json:"order_id"`
	CustomerCode   string    `json:"customer_code"`
	FitRating      int       `json:"fit_rating"`
	QualityRating  int       `json:"quality_rating"`
	DeliveryRating int       `json:"delivery_rating"`
	OverallRating  int       `json:"overall_rating"`
	Comments       string    `json:"comments,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// ToOrderSummaryResponse builds the pre-form order recap
func ToOrderSummaryResponse(o *order.Order) *OrderSummaryResponse {
	items := make([]FeedbackItemSummary, len(o.Items))
	for i, item := range o.Items {
		items[i] = FeedbackItemSummary{
			Title:    item.Title,
			Size:     item.Size,
			Quantity: item.Quantity,
		}
	}
	return &OrderSummaryResponse{
		OrderNumber:  o.Number,
		CustomerName: o.CustomerName,
		DeliveredAt:  o.DeliveredAt,
		Items:        items,
	}
}

// ToFeedbackResponse converts domain feedback to its response shape
func ToFeedbackResponse(f *feedback.Feedback) *FeedbackResponse {
	return &FeedbackResponse{
		ID:             f.ID,
		OrderID:        f.OrderID,
		CustomerCode:   f.CustomerCode,
		FitRating:      f.FitRating,
		QualityRating:  f.QualityRating,
		DeliveryRating: f.DeliveryRating,
		OverallRating:  f.OverallRating,
		Comments:       f.Comments,
		CreatedAt:      f.CreatedAt,
	}
}
