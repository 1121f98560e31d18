package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	checkoutapp "github.com/shopfront/backend/internal/application/checkout"
	feedbackapp "github.com/shopfront/backend/internal/application/feedback"
	"github.com/shopfront/backend/internal/domain/promo"
	"github.com/shopfront/backend/internal/domain/shared"
	"github.com/shopfront/backend/internal/infrastructure/auth"
	"github.com/shopfront/backend/internal/interfaces/http/middleware"
)

// stubCouponRepo serves a single coupon by code.
type stubCouponRepo struct {
	coupon *promo.Coupon
}

func (s *stubCouponRepo) FindByID(_ context.Context, _ uuid.UUID) (*promo.Coupon, error) {
	return nil, shared.ErrNotFound
}

func (s *stubCouponRepo) FindByCode(_ context.Context, code string) (*promo.Coupon, error) {
	if s.coupon != nil && s.coupon.Code == code {
		return s.coupon, nil
	}
	return nil, shared.ErrNotFound
}

func (s *stubCouponRepo) FindAll(_ context.Context, _ shared.Filter) ([]promo.Coupon, error) {
	return nil, nil
}

func (s *stubCouponRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return 0, nil
}

func (s *stubCouponRepo) Save(_ context.Context, _ *promo.Coupon) error { return nil }

func (s *stubCouponRepo) Delete(_ context.Context, _ uuid.UUID) error { return nil }

func (s *stubCouponRepo) HasUsage(_ context.Context, _ uuid.UUID, _ string) (bool, error) {
	return false, nil
}

func newStorefrontEngine(h *StorefrontHandler) *gin.Engine {
	middleware.SetupValidator()
	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.POST("/api/checkout", h.Checkout)
	engine.POST("/api/coupons/validate", h.ValidateCoupon)
	return engine
}

func TestStorefrontHandler_Checkout_InvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	checkoutService := checkoutapp.NewCheckoutService(nil, nil, nil, nil, zap.NewNop())
	h := NewStorefrontHandler(checkoutService, nil, nil)
	engine := newStorefrontEngine(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "BAD_REQUEST", body.Error.Code)
}

func TestStorefrontHandler_ValidateCoupon(t *testing.T) {
	gin.SetMode(gin.TestMode)
	coupon, err := promo.NewCoupon("SAVE10", promo.CouponGlobal, promo.DiscountPercent,
		decimal.NewFromInt(10), 0, time.Now().Add(24*time.Hour), "")
	require.NoError(t, err)

	checkoutService := checkoutapp.NewCheckoutService(nil, nil,
		&stubCouponRepo{coupon: coupon}, nil, zap.NewNop())
	h := NewStorefrontHandler(checkoutService, nil, nil)
	engine := newStorefrontEngine(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/coupons/validate",
		strings.NewReader(`{"code":"SAVE10","subtotal":"1000"}`))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Code     string          `json:"code"`
			Discount decimal.Decimal `json:"discount"`
			Total    decimal.Decimal `json:"total"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "SAVE10", body.Data.Code)
	assert.True(t, body.Data.Discount.Equal(decimal.NewFromInt(100)))
	assert.True(t, body.Data.Total.Equal(decimal.NewFromInt(900)))
}

func TestStorefrontHandler_FeedbackSummary_InvalidToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens := auth.NewFeedbackTokenService("feedback-secret", "shopfront", 90*24*time.Hour)
	// a garbage token is rejected before any repository access
	feedbackService := feedbackapp.NewFeedbackService(nil, nil, tokens, zap.NewNop())
	h := NewStorefrontHandler(nil, feedbackService, nil)

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.GET("/api/feedback/:token", h.FeedbackSummary)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/feedback/not-a-token", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "INVALID_TOKEN", body.Error.Code)
}
