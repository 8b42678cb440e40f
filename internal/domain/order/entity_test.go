// internal/domain/order/entity_test.go
package order

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartdom "leafline/internal/domain/cart"
)

var t0 = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func cartWithItems(t *testing.T) *cartdom.Cart {
	t.Helper()

	c, err := cartdom.New("device-1", []cartdom.LineItem{{
		ID:         "li-1",
		ProductID:  "p1",
		VariantID:  "v1",
		Name:       "Blue Dream",
		PriceCents: 1500,
		Quantity:   2,
		Image:      "/images/blue-dream.jpg",
		Variant:    cartdom.VariantSnapshot{Name: "3.5g", WeightGrams: 4},
	}}, t0)
	require.NoError(t, err)
	return c
}

func TestFromCart_SnapshotsItemsAndTotals(t *testing.T) {
	c := cartWithItems(t)

	o, err := FromCart("order-1", c, "user-1", Contact{Name: "Jordan", Address: "12 Pine St"}, t0)
	require.NoError(t, err)

	assert.Equal(t, StatusPending, o.Status)
	assert.False(t, o.Notified)
	assert.Equal(t, "device-1", o.DeviceID)
	assert.Equal(t, int64(3000), o.SubtotalCents)
	assert.Equal(t, int64(308), o.TaxCents)
	assert.Equal(t, int64(500), o.DeliveryFeeCents)
	assert.Equal(t, int64(3808), o.TotalCents)

	// a later cart mutation must not rewrite the order
	_, _, err = c.SetQuantity("li-1", 9, t0.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 2, o.Items[0].Quantity)
}

func TestFromCart_EmptyCart(t *testing.T) {
	c, err := cartdom.New("device-1", nil, t0)
	require.NoError(t, err)

	_, err = FromCart("order-1", c, "user-1", Contact{}, t0)
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestTransition_HappyPath(t *testing.T) {
	c := cartWithItems(t)
	o, err := FromCart("order-1", c, "user-1", Contact{Name: "Jordan", Address: "12 Pine St"}, t0)
	require.NoError(t, err)

	require.NoError(t, o.Transition(StatusConfirmed, t0.Add(time.Minute)))
	require.NoError(t, o.Transition(StatusOutForDelivery, t0.Add(2*time.Minute)))
	require.NoError(t, o.Transition(StatusDelivered, t0.Add(3*time.Minute)))
	assert.Equal(t, StatusDelivered, o.Status)
}

func TestTransition_Rejected(t *testing.T) {
	c := cartWithItems(t)
	o, err := FromCart("order-1", c, "user-1", Contact{Name: "Jordan", Address: "12 Pine St"}, t0)
	require.NoError(t, err)

	// skipping confirmed is not allowed
	assert.ErrorIs(t, o.Transition(StatusDelivered, t0), ErrInvalidOrder)

	// terminal states are terminal
	require.NoError(t, o.Transition(StatusCancelled, t0))
	assert.ErrorIs(t, o.Transition(StatusConfirmed, t0), ErrInvalidOrder)
}

func TestTransition_CancelFromAnyNonTerminalState(t *testing.T) {
	c := cartWithItems(t)
	o, err := FromCart("order-1", c, "user-1", Contact{Name: "Jordan", Address: "12 Pine St"}, t0)
	require.NoError(t, err)

	require.NoError(t, o.Transition(StatusConfirmed, t0))
	require.NoError(t, o.Transition(StatusOutForDelivery, t0))
	assert.NoError(t, o.Transition(StatusCancelled, t0))
}
