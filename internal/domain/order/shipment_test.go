package order

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShipment(t *testing.T) {
	o := createTestOrder(t)

	s, err := NewShipment(o)
	require.NoError(t, err)
	assert.Equal(t, o.ID, s.OrderID)
	assert.Equal(t, o.Number, s.OrderNumber)
	assert.Equal(t, StatusPending, s.Status)

	_, err = NewShipment(nil)
	assert.Error(t, err)
}

func TestShipment_SyncWith(t *testing.T) {
	o := createTestOrder(t)
	_, err := o.AddItem("Linen Shirt", "L", 1, decimal.NewFromInt(120))
	require.NoError(t, err)
	s, err := NewShipment(o)
	require.NoError(t, err)

	when := time.Date(2026, 8, 2, 9, 30, 0, 0, time.UTC)
	_, err = o.MarkStatus(StatusShipped, when)
	require.NoError(t, err)

	s.SyncWith(o)

	assert.Equal(t, StatusShipped, s.Status)
	require.NotNil(t, s.ShippedAt)
	assert.Equal(t, when, *s.ShippedAt)
	assert.Nil(t, s.DeliveredAt)
}

func TestShipment_SetTracking(t *testing.T) {
	o := createTestOrder(t)
	s, err := NewShipment(o)
	require.NoError(t, err)

	s.SetTracking("AWB123456", "Delhivery", "EcoWrap")
	assert.Equal(t, "AWB123456", s.TrackingID)
	assert.Equal(t, "Delhivery", s.Carrier)
	assert.Equal(t, "EcoWrap", s.PackagingProvider)

	// empty fields leave existing values untouched
	s.SetTracking("", "BlueDart", "")
	assert.Equal(t, "AWB123456", s.TrackingID)
	assert.Equal(t, "BlueDart", s.Carrier)
	assert.Equal(t, "EcoWrap", s.PackagingProvider)
}
