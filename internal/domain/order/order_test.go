package order

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestOrder(t *testing.T) *Order {
	o, err := NewOrder("ORD-202608-00001", "CUST-12", "Arjun Mehta", "arjun@example.com", PaymentPrepaid, Address{
		Line1:      "14 Linking Road",
		City:       "Mumbai",
		State:      "Maharashtra",
		PostalCode: "400050",
		Country:    "India",
		Phone:      "+919820012345",
	})
	require.NoError(t, err)
	return o
}

func TestStatus_IsValid(t *testing.T) {
	tests := []struct {
		status  Status
		isValid bool
	}{
		{StatusPending, true},
		{StatusFulfilled, true},
		{StatusShipped, true},
		{StatusOutForDelivery, true},
		{StatusDelivered, true},
		{Status("logistics"), false},
		{Status("in_transit"), false},
		{Status(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.status.IsValid())
		})
	}
}

func TestStatus_Rank(t *testing.T) {
	assert.Equal(t, 0, StatusPending.Rank())
	assert.Equal(t, 4, StatusDelivered.Rank())
	assert.Equal(t, -1, Status("bogus").Rank())
	assert.True(t, StatusShipped.IsForwardOf(StatusFulfilled))
	assert.False(t, StatusPending.IsForwardOf(StatusDelivered))
}

func TestNewOrder(t *testing.T) {
	t.Run("creates pending order", func(t *testing.T) {
		o := createTestOrder(t)

		assert.Equal(t, StatusPending, o.Status)
		assert.Equal(t, PaymentPrepaid, o.PaymentStatus)
		assert.True(t, o.Total.IsZero())
		assert.Empty(t, o.InvoiceNumber)
		assert.Nil(t, o.ShippedAt)
	})

	t.Run("rejects empty order number", func(t *testing.T) {
		_, err := NewOrder("", "CUST-1", "Name", "a@b.c", PaymentUnpaid, Address{})
		assert.Error(t, err)
	})

	t.Run("rejects unknown payment status", func(t *testing.T) {
		_, err := NewOrder("ORD-1", "CUST-1", "Name", "a@b.c", PaymentStatus("cod"), Address{})
		assert.Error(t, err)
	})
}

func TestOrder_AddItem_RecomputesTotal(t *testing.T) {
	o := createTestOrder(t)

	_, err := o.AddItem("Oxford Shirt", "M", 2, decimal.NewFromInt(100))
	require.NoError(t, err)
	_, err = o.AddItem("Pocket Square", "", 1, decimal.NewFromInt(50))
	require.NoError(t, err)

	// 2 x 100 + 1 x 50 = 250
	assert.True(t, o.Subtotal.Equal(decimal.NewFromInt(250)), "subtotal = %s", o.Subtotal)
	assert.True(t, o.Total.Equal(decimal.NewFromInt(250)), "total = %s", o.Total)
	assert.Equal(t, 2, o.ItemCount())
}

func TestOrder_AddItem_Validation(t *testing.T) {
	o := createTestOrder(t)

	_, err := o.AddItem("", "M", 1, decimal.NewFromInt(10))
	assert.Error(t, err)

	_, err = o.AddItem("Chinos", "32", 0, decimal.NewFromInt(10))
	assert.Error(t, err)

	_, err = o.AddItem("Chinos", "32", 1, decimal.NewFromInt(-10))
	assert.Error(t, err)
}

func TestOrder_ApplyDiscount(t *testing.T) {
	o := createTestOrder(t)
	_, err := o.AddItem("Blazer", "40", 1, decimal.NewFromInt(200))
	require.NoError(t, err)

	t.Run("applies valid discount", func(t *testing.T) {
		err := o.ApplyDiscount(decimal.NewFromInt(50), "WELCOME50")
		require.NoError(t, err)
		assert.True(t, o.Total.Equal(decimal.NewFromInt(150)))
		assert.Equal(t, "WELCOME50", o.CouponCode)
	})

	t.Run("rejects discount above subtotal", func(t *testing.T) {
		err := o.ApplyDiscount(decimal.NewFromInt(500), "TOOMUCH")
		assert.Error(t, err)
	})

	t.Run("rejects negative discount", func(t *testing.T) {
		err := o.ApplyDiscount(decimal.NewFromInt(-1), "NEG")
		assert.Error(t, err)
	})
}

func TestOrder_MarkStatus(t *testing.T) {
	t.Run("stamps timestamp once", func(t *testing.T) {
		o := createTestOrder(t)
		first := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
		second := first.Add(48 * time.Hour)

		stamped, err := o.MarkStatus(StatusShipped, first)
		require.NoError(t, err)
		assert.True(t, stamped)
		require.NotNil(t, o.ShippedAt)
		assert.Equal(t, first, *o.ShippedAt)

		// repeat call must not overwrite the original timestamp
		stamped, err = o.MarkStatus(StatusShipped, second)
		require.NoError(t, err)
		assert.False(t, stamped)
		assert.Equal(t, first, *o.ShippedAt)
	})

	t.Run("pending has no timestamp", func(t *testing.T) {
		o := createTestOrder(t)
		stamped, err := o.MarkStatus(StatusPending, time.Now())
		require.NoError(t, err)
		assert.False(t, stamped)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		o := createTestOrder(t)
		_, err := o.MarkStatus(Status("logistics"), time.Now())
		assert.Error(t, err)
	})

	t.Run("does not enforce linear sequence", func(t *testing.T) {
		o := createTestOrder(t)
		_, err := o.MarkStatus(StatusDelivered, time.Now())
		require.NoError(t, err)
		assert.Equal(t, StatusDelivered, o.Status)
	})
}

func TestOrder_AssignInvoiceNumber(t *testing.T) {
	o := createTestOrder(t)

	assert.True(t, o.AssignInvoiceNumber("INV-202608-0042"))
	assert.False(t, o.AssignInvoiceNumber("INV-202608-9999"), "second assignment must be ignored")
	assert.Equal(t, "INV-202608-0042", o.InvoiceNumber)
}
