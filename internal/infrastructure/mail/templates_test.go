package mail

import (
	"testing"
	"time"

	"github.com/shopfront/backend/internal/domain/order"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTemplates(t *testing.T) *Templates {
	t.Helper()
	tmpl, err := NewTemplates("Meridian Menswear", "https://shop.example.com")
	require.NoError(t, err)
	return tmpl
}

func newMailTestOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder("ORD-202608-0007", "CUST-3", "Priya Nair", "priya@example.com",
		order.PaymentPrepaid, order.Address{
			Line1:      "7 Marine Drive",
			City:       "Mumbai",
			State:      "Maharashtra",
			PostalCode: "400020",
			Country:    "India",
			Phone:      "+919812345678",
		})
	require.NoError(t, err)
	_, err = o.AddItem("Linen Kurta", "L", 1, decimal.NewFromInt(1499))
	require.NoError(t, err)
	return o
}

func TestTemplates_OrderConfirmation(t *testing.T) {
	tmpl := newTestTemplates(t)
	o := newMailTestOrder(t)

	r, err := tmpl.OrderConfirmation(o)
	require.NoError(t, err)

	assert.Equal(t, "Order ORD-202608-0007 confirmed", r.Subject)
	assert.Contains(t, r.HTML, "Priya Nair")
	assert.Contains(t, r.HTML, "Linen Kurta")
	assert.Contains(t, r.HTML, "₹1,499.00")
	assert.Contains(t, r.HTML, "Meridian Menswear")
}

func TestTemplates_Shipped(t *testing.T) {
	tmpl := newTestTemplates(t)
	o := newMailTestOrder(t)
	s, err := order.NewShipment(o)
	require.NoError(t, err)
	s.SetTracking("DHLV998877", "Delhivery", "")

	r, err := tmpl.Shipped(o, s)
	require.NoError(t, err)

	assert.Equal(t, "Order ORD-202608-0007 is on its way", r.Subject)
	assert.Contains(t, r.HTML, "Delhivery")
	assert.Contains(t, r.HTML, "DHLV998877")
	assert.Contains(t, r.HTML, "invoice is attached")
}

func TestTemplates_OutForDelivery(t *testing.T) {
	tmpl := newTestTemplates(t)
	o := newMailTestOrder(t)
	s, err := order.NewShipment(o)
	require.NoError(t, err)

	r, err := tmpl.OutForDelivery(o, s)
	require.NoError(t, err)

	assert.Equal(t, "Order ORD-202608-0007 arrives today", r.Subject)
	assert.Contains(t, r.HTML, "out for delivery")
}

func TestTemplates_Delivered(t *testing.T) {
	tmpl := newTestTemplates(t)
	o := newMailTestOrder(t)

	r, err := tmpl.Delivered(o, "signed-token-abc")
	require.NoError(t, err)

	assert.Contains(t, r.Subject, "delivered")
	assert.Contains(t, r.HTML, "https://shop.example.com/feedback/signed-token-abc")
}

func TestTemplates_PasswordReset(t *testing.T) {
	tmpl := newTestTemplates(t)

	r, err := tmpl.PasswordReset("Priya", "482913", 15*time.Minute)
	require.NoError(t, err)

	assert.Equal(t, "Your password reset code", r.Subject)
	assert.Contains(t, r.HTML, "482913")
	assert.Contains(t, r.HTML, "15 minutes")
}

func TestTemplates_Broadcast(t *testing.T) {
	tmpl := newTestTemplates(t)

	r, err := tmpl.Broadcast("End of season sale", "<p>Flat 40% off <strong>everything</strong>.</p>")
	require.NoError(t, err)

	assert.Equal(t, "End of season sale", r.Subject)
	// admin body is trusted HTML and must not be escaped
	assert.Contains(t, r.HTML, "<strong>everything</strong>")
}
