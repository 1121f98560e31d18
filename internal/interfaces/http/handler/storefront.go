package handler

import (
	"github.com/gin-gonic/gin"

	checkoutapp "github.com/shopfront/backend/internal/application/checkout"
	customerapp "github.com/shopfront/backend/internal/application/customer"
	feedbackapp "github.com/shopfront/backend/internal/application/feedback"
)

// StorefrontHandler handles the public storefront endpoints: checkout,
// coupon preview, feedback, and newsletter signup.
type StorefrontHandler struct {
	BaseHandler
	checkoutService   *checkoutapp.CheckoutService
	feedbackService   *feedbackapp.FeedbackService
	newsletterService *customerapp.NewsletterService
}

// NewStorefrontHandler creates a new StorefrontHandler
func NewStorefrontHandler(
	checkoutService *checkoutapp.CheckoutService,
	feedbackService *feedbackapp.FeedbackService,
	newsletterService *customerapp.NewsletterService,
) *StorefrontHandler {
	return &StorefrontHandler{
		checkoutService:   checkoutService,
		feedbackService:   feedbackService,
		newsletterService: newsletterService,
	}
}

// Checkout handles POST /api/checkout
func (h *StorefrontHandler) Checkout(c *gin.Context) {
	var req checkoutapp.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.checkoutService.Checkout(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ValidateCoupon handles POST /api/coupons/validate
func (h *StorefrontHandler) ValidateCoupon(c *gin.Context) {
	var req checkoutapp.CouponPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.checkoutService.PreviewCoupon(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// FeedbackSummary handles GET /api/feedback/:token
func (h *StorefrontHandler) FeedbackSummary(c *gin.Context) {
	resp, err := h.feedbackService.GetOrderSummary(c.Request.Context(), c.Param("token"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// SubmitFeedback handles POST /api/feedback/:token
func (h *StorefrontHandler) SubmitFeedback(c *gin.Context) {
	var req feedbackapp.SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.feedbackService.Submit(c.Request.Context(), c.Param("token"), &req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// SubscribeNewsletter handles POST /api/newsletter
func (h *StorefrontHandler) SubscribeNewsletter(c *gin.Context) {
	var req customerapp.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.newsletterService.Subscribe(c.Request.Context(), &req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"message": "Subscribed"})
}

// UnsubscribeNewsletter handles POST /api/newsletter/unsubscribe. Links in
// broadcast footers point here, so it takes a plain body rather than auth.
func (h *StorefrontHandler) UnsubscribeNewsletter(c *gin.Context) {
	var req customerapp.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.newsletterService.Unsubscribe(c.Request.Context(), req.Email); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"message": "Unsubscribed"})
}

// RegisterRoutes wires the storefront endpoints into the public group
func (h *StorefrontHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/checkout", h.Checkout)
	rg.POST("/coupons/validate", h.ValidateCoupon)
	rg.GET("/feedback/:token", h.FeedbackSummary)
	rg.POST("/feedback/:token", h.SubmitFeedback)
	rg.POST("/newsletter", h.SubscribeNewsletter)
	rg.POST("/newsletter/unsubscribe", h.UnsubscribeNewsletter)
}
