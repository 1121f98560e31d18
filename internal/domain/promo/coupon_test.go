package promo

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCoupon(t *testing.T, typ CouponType, kind DiscountKind, value int64, cap int) *Coupon {
	expiry := time.Now().Add(30 * 24 * time.Hour)
	customerCode := ""
	if typ == CouponIndividual {
		customerCode = "CUST-42"
	}
	c, err := NewCoupon("SUMMER20", typ, kind, decimal.NewFromInt(value), cap, expiry, customerCode)
	require.NoError(t, err)
	return c
}

func TestNewCoupon_Validation(t *testing.T) {
	expiry := time.Now().Add(time.Hour)

	_, err := NewCoupon("", CouponGlobal, DiscountPercent, decimal.NewFromInt(10), 0, expiry, "")
	assert.Error(t, err)

	_, err = NewCoupon("X", CouponType("vip"), DiscountPercent, decimal.NewFromInt(10), 0, expiry, "")
	assert.Error(t, err)

	_, err = NewCoupon("X", CouponGlobal, DiscountPercent, decimal.NewFromInt(150), 0, expiry, "")
	assert.Error(t, err)

	_, err = NewCoupon("X", CouponIndividual, DiscountFlat, decimal.NewFromInt(50), 1, expiry, "")
	assert.Error(t, err, "individual coupon requires a customer code")
}

func TestCoupon_ValidateFor(t *testing.T) {
	now := time.Now()

	t.Run("valid global coupon", func(t *testing.T) {
		c := validCoupon(t, CouponGlobal, DiscountPercent, 20, 100)
		assert.NoError(t, c.ValidateFor("CUST-1", now, false))
	})

	t.Run("expired always rejected even with remaining uses", func(t *testing.T) {
		c := validCoupon(t, CouponGlobal, DiscountPercent, 20, 100)
		c.ExpiresAt = now.Add(-time.Minute)
		err := c.ValidateFor("CUST-1", now, false)
		assert.ErrorIs(t, err, ErrCouponExpired)
	})

	t.Run("second use by same customer rejected", func(t *testing.T) {
		c := validCoupon(t, CouponGlobal, DiscountPercent, 20, 100)
		err := c.ValidateFor("CUST-1", now, true)
		assert.ErrorIs(t, err, ErrCouponAlreadyUsed)
	})

	t.Run("usage cap reached", func(t *testing.T) {
		c := validCoupon(t, CouponGlobal, DiscountPercent, 20, 5)
		c.UsedCount = 5
		err := c.ValidateFor("CUST-1", now, false)
		assert.ErrorIs(t, err, ErrCouponExhausted)
	})

	t.Run("individual coupon for another customer", func(t *testing.T) {
		c := validCoupon(t, CouponIndividual, DiscountFlat, 100, 1)
		err := c.ValidateFor("CUST-99", now, false)
		assert.ErrorIs(t, err, ErrCouponNotAssigned)

		assert.NoError(t, c.ValidateFor("CUST-42", now, false))
	})

	t.Run("inactive coupon", func(t *testing.T) {
		c := validCoupon(t, CouponGlobal, DiscountPercent, 20, 0)
		c.Active = false
		assert.ErrorIs(t, c.ValidateFor("CUST-1", now, false), ErrCouponInactive)
	})
}

func TestCoupon_DiscountOn(t *testing.T) {
	t.Run("percent", func(t *testing.T) {
		c := validCoupon(t, CouponGlobal, DiscountPercent, 20, 0)
		d := c.DiscountOn(decimal.NewFromInt(250))
		assert.True(t, d.Equal(decimal.NewFromInt(50)), "got %s", d)
	})

	t.Run("flat capped at subtotal", func(t *testing.T) {
		c := validCoupon(t, CouponGlobal, DiscountFlat, 500, 0)
		d := c.DiscountOn(decimal.NewFromInt(250))
		assert.True(t, d.Equal(decimal.NewFromInt(250)), "got %s", d)
	})
}
