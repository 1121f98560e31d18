package checkout

import (
	"github.com/shopspring/decimal"

	appOrder "github.com/shopfront/backend/internal/application/order"
)

// CheckoutItemRequest is one cart line at checkout
type CheckoutItemRequest struct {
	Title     string          `json:"title" binding:"required,min=1,max=200"`
	Size      string          `json:"size" binding:"max=20"`
	Quantity  int             `json:"quantity" binding:"required,min=1"`
	UnitPrice decimal.Decimal `json:"unit_price" binding:"required"`
}

// CheckoutRequest is the storefront checkout payload. Totals sent by the
// client are ignored; the server recomputes everything.
type CheckoutRequest struct {
	CustomerName    string                  `json:"customer_name" binding:"required,min=1,max=200"`
	Email           string                  `json:"email" binding:"required,email,max=200"`
	Phone           string                  `json:"phone" binding:"required,phone"`
	PaymentStatus   string                  `json:"payment_status" binding:"required,oneof=prepaid unpaid"`
	Address         appOrder.AddressRequest `json:"address" binding:"required"`
	Items           []CheckoutItemRequest   `json:"items" binding:"required,min=1,dive"`
	CouponCode      string                  `json:"coupon_code" binding:"max=50"`
	NewsletterOptIn bool                    `json:"newsletter_opt_in"`
}

// CheckoutResponse confirms a placed order
type CheckoutResponse struct {
	Order        *appOrder.OrderResponse `json:"order"`
	CustomerCode string                  `json:"customer_code"`
	Discount     decimal.Decimal         `json:"discount"`
}

// CouponPreviewRequest asks what a coupon would take off a cart
type CouponPreviewRequest struct {
	Code         string          `json:"code" binding:"required,max=50"`
	CustomerCode string          `json:"customer_code" binding:"max=50"`
	Subtotal     decimal.Decimal `json:"subtotal" binding:"required"`
}

// CouponPreviewResponse is the discount preview for a valid coupon
type CouponPreviewResponse struct {
	Code     string          `json:"code"`
	Kind     string          `json:"kind"`
	Value    decimal.Decimal `json:"value"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`
}
