// internal/domain/cart/entity_test.go
package cart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func item(id, productID, variantID string, priceCents int64, qty int) LineItem {
	return LineItem{
		ID:         id,
		ProductID:  productID,
		VariantID:  variantID,
		Name:       "Product " + productID,
		PriceCents: priceCents,
		Quantity:   qty,
		Image:      "/images/" + productID + ".jpg",
		Variant:    VariantSnapshot{Name: "3.5g", WeightGrams: 4},
		Category:   "flower",
	}
}

func TestNew_EmptyCart(t *testing.T) {
	c, err := New("device-1", nil, t0)
	require.NoError(t, err)

	assert.Equal(t, "device-1", c.ID)
	assert.Empty(t, c.Items)
	assert.Equal(t, Totals{}, c.Totals())
}

func TestAdd_AppendsNewRow(t *testing.T) {
	c, err := New("device-1", nil, t0)
	require.NoError(t, err)

	row, merged, err := c.Add(item("li-1", "p1", "v1", 1500, 2), t0.Add(time.Minute))
	require.NoError(t, err)

	assert.False(t, merged)
	assert.Equal(t, "li-1", row.ID)
	assert.Len(t, c.Items, 1)
	assert.Equal(t, t0.Add(time.Minute), c.UpdatedAt)
}

func TestAdd_MergesByProductVariantPair(t *testing.T) {
	c, err := New("device-1", []LineItem{item("li-1", "p1", "v1", 1500, 2)}, t0)
	require.NoError(t, err)

	row, merged, err := c.Add(item("li-2", "p1", "v1", 1500, 3), t0.Add(time.Minute))
	require.NoError(t, err)

	assert.True(t, merged)
	assert.Equal(t, "li-1", row.ID, "merge keeps the existing row's id")
	assert.Equal(t, 5, row.Quantity)
	assert.Len(t, c.Items, 1)
}

func TestAdd_SameProductDifferentVariantIsSeparateRow(t *testing.T) {
	c, err := New("device-1", []LineItem{item("li-1", "p1", "v1", 1500, 1)}, t0)
	require.NoError(t, err)

	_, merged, err := c.Add(item("li-2", "p1", "v2", 2800, 1), t0.Add(time.Minute))
	require.NoError(t, err)

	assert.False(t, merged)
	assert.Len(t, c.Items, 2)
}

func TestAdd_PlaceholderImageFallback(t *testing.T) {
	c, err := New("device-1", nil, t0)
	require.NoError(t, err)

	it := item("li-1", "p1", "v1", 1500, 1)
	it.Image = ""
	row, _, err := c.Add(it, t0)
	require.NoError(t, err)

	assert.Equal(t, PlaceholderImage, row.Image)
}

func TestAdd_RejectsInvalidInput(t *testing.T) {
	c, err := New("device-1", nil, t0)
	require.NoError(t, err)

	_, _, err = c.Add(item("li-1", "", "v1", 1500, 1), t0)
	assert.ErrorIs(t, err, ErrInvalidCart)

	_, _, err = c.Add(item("li-1", "p1", "v1", 1500, 0), t0)
	assert.ErrorIs(t, err, ErrInvalidCart)

	_, _, err = c.Add(item("", "p1", "v1", 1500, 1), t0)
	assert.ErrorIs(t, err, ErrInvalidCart, "fresh row needs a generated id")
}

func TestSetQuantity_Overwrites(t *testing.T) {
	c, err := New("device-1", []LineItem{item("li-1", "p1", "v1", 1500, 2)}, t0)
	require.NoError(t, err)

	row, changed, err := c.SetQuantity("li-1", 7, t0.Add(time.Minute))
	require.NoError(t, err)

	assert.True(t, changed)
	assert.Equal(t, 7, row.Quantity, "set is overwrite, not additive")
}

func TestSetQuantity_ZeroDelegatesToRemove(t *testing.T) {
	c, err := New("device-1", []LineItem{item("li-1", "p1", "v1", 1500, 2)}, t0)
	require.NoError(t, err)

	removed, changed, err := c.SetQuantity("li-1", 0, t0.Add(time.Minute))
	require.NoError(t, err)

	assert.True(t, changed)
	assert.Equal(t, "li-1", removed.ID)
	assert.Empty(t, c.Items)
}

func TestSetQuantity_UnknownIDIsNoOp(t *testing.T) {
	c, err := New("device-1", []LineItem{item("li-1", "p1", "v1", 1500, 2)}, t0)
	require.NoError(t, err)

	before := c.UpdatedAt
	_, changed, err := c.SetQuantity("nope", 3, t0.Add(time.Minute))
	require.NoError(t, err)

	assert.False(t, changed)
	assert.Equal(t, before, c.UpdatedAt)
	assert.Equal(t, 2, c.Items[0].Quantity)
}

func TestRemove_IsIdempotent(t *testing.T) {
	c, err := New("device-1", []LineItem{
		item("li-1", "p1", "v1", 1500, 2),
		item("li-2", "p2", "v1", 2800, 1),
	}, t0)
	require.NoError(t, err)

	removed, ok, err := c.Remove("li-1", t0.Add(time.Minute))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "li-1", removed.ID)
	assert.Len(t, c.Items, 1)

	_, ok, err = c.Remove("li-1", t0.Add(2*time.Minute))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Len(t, c.Items, 1)
}

func TestClear(t *testing.T) {
	c, err := New("device-1", []LineItem{item("li-1", "p1", "v1", 1500, 2)}, t0)
	require.NoError(t, err)

	require.NoError(t, c.Clear(t0.Add(time.Minute)))
	assert.Empty(t, c.Items)
	assert.Equal(t, Totals{}, c.Totals())
}

func TestTotals_SingleItem(t *testing.T) {
	// 2 x $15.00 = $30.00 subtotal, 10.25% tax = $3.08, fee $5.00, total $38.08
	c, err := New("device-1", []LineItem{item("li-1", "p1", "v1", 1500, 2)}, t0)
	require.NoError(t, err)

	got := c.Totals()
	assert.Equal(t, Totals{
		TotalItems:       2,
		SubtotalCents:    3000,
		TaxCents:         308,
		DeliveryFeeCents: 500,
		TotalCents:       3808,
	}, got)
}

func TestTotals_MultipleRows(t *testing.T) {
	c, err := New("device-1", []LineItem{
		item("li-1", "p1", "v1", 1500, 2), // 3000
		item("li-2", "p2", "v1", 2850, 1), // 2850
	}, t0)
	require.NoError(t, err)

	got := c.Totals()
	assert.Equal(t, 3, got.TotalItems)
	assert.Equal(t, int64(5850), got.SubtotalCents)
	// 5850 * 0.1025 = 599.625 -> 600 (half-up)
	assert.Equal(t, int64(600), got.TaxCents)
	assert.Equal(t, int64(500), got.DeliveryFeeCents)
	assert.Equal(t, int64(6950), got.TotalCents)
}

func TestTotals_RecomputedAfterEveryMutation(t *testing.T) {
	c, err := New("device-1", []LineItem{item("li-1", "p1", "v1", 1500, 2)}, t0)
	require.NoError(t, err)

	_, _, err = c.SetQuantity("li-1", 1, t0.Add(time.Minute))
	require.NoError(t, err)

	got := c.Totals()
	assert.Equal(t, int64(1500), got.SubtotalCents)
	// 1500 * 0.1025 = 153.75 -> 154
	assert.Equal(t, int64(154), got.TaxCents)
	assert.Equal(t, int64(2154), got.TotalCents)
}

func TestProductIDs_DistinctFirstSeen(t *testing.T) {
	c, err := New("device-1", []LineItem{
		item("li-1", "p1", "v1", 1500, 1),
		item("li-2", "p1", "v2", 2800, 1),
		item("li-3", "p2", "v1", 900, 1),
	}, t0)
	require.NoError(t, err)

	assert.Equal(t, []string{"p1", "p2"}, c.ProductIDs())
}

func TestRetainProducts_DropsStaleRows(t *testing.T) {
	c, err := New("device-1", []LineItem{
		item("li-1", "p1", "v1", 1500, 1),
		item("li-2", "p2", "v1", 2800, 1),
		item("li-3", "p2", "v2", 900, 1),
	}, t0)
	require.NoError(t, err)

	dropped := c.RetainProducts(map[string]struct{}{"p1": {}}, t0.Add(time.Minute))

	require.Len(t, dropped, 2)
	assert.Equal(t, "li-2", dropped[0].ID)
	assert.Equal(t, "li-3", dropped[1].ID)
	require.Len(t, c.Items, 1)
	assert.Equal(t, "li-1", c.Items[0].ID)
	assert.Equal(t, t0.Add(time.Minute), c.UpdatedAt)
}

func TestRetainProducts_NoDropLeavesCartUntouched(t *testing.T) {
	c, err := New("device-1", []LineItem{item("li-1", "p1", "v1", 1500, 1)}, t0)
	require.NoError(t, err)

	dropped := c.RetainProducts(map[string]struct{}{"p1": {}}, t0.Add(time.Minute))

	assert.Nil(t, dropped)
	assert.Equal(t, t0, c.UpdatedAt, "no mutation, no touch")
}
