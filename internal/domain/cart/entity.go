// internal/domain/cart/entity.go
package cart

import (
	"errors"
	"math"
	"strings"
	"time"
)

var (
	ErrInvalidCart = errors.New("cart: invalid")
)

// Pricing constants for the delivery jurisdiction.
// Tax is recomputed fresh from the subtotal on every Totals() call; nothing is
// accumulated incrementally, so there is no rounding drift across mutations.
const (
	TaxRate                = 0.1025
	DeliveryFeeCents int64 = 500
)

// PlaceholderImage is used when a product has no image at add-time.
const PlaceholderImage = "/images/placeholder-product.svg"

// VariantSnapshot is the variant display data captured at add-time so the cart
// screen renders without a catalog refetch.
type VariantSnapshot struct {
	Name        string `json:"name" firestore:"name"`
	WeightGrams int    `json:"weightGrams" firestore:"weightGrams"`
}

// LineItem represents "one row" in a cart.
//   - ID is the line item's own identity (generated at insertion time) and is the
//     stable key for SetQuantity / Remove.
//   - Merge identity is (ProductID, VariantID): adding the same pair again
//     increments quantity instead of appending a duplicate row.
//   - PriceCents is the unit price in integer minor units, captured at add-time.
type LineItem struct {
	ID         string          `json:"id" firestore:"id"`
	ProductID  string          `json:"productId" firestore:"productId"`
	VariantID  string          `json:"variantId" firestore:"variantId"`
	Name       string          `json:"name" firestore:"name"`
	PriceCents int64           `json:"priceCents" firestore:"priceCents"`
	Quantity   int             `json:"quantity" firestore:"quantity"`
	Image      string          `json:"image" firestore:"image"`
	Variant    VariantSnapshot `json:"variant" firestore:"variant"`
	Category   string          `json:"category" firestore:"category"`
}

// Cart represents "a cart document".
//   - docId = deviceId (Firestore): carts are keyed by browser/device, not by
//     signed-in identity.
//   - Items keep insertion order; no sort invariant beyond that.
type Cart struct {
	// ID is the Firestore docId (= deviceId).
	ID string `json:"id" firestore:"id"`

	Items []LineItem `json:"items" firestore:"items"`

	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
}

// Totals are the derived aggregates. They are never stored; callers recompute
// via Cart.Totals() on every read.
type Totals struct {
	TotalItems       int
	SubtotalCents    int64
	TaxCents         int64
	DeliveryFeeCents int64
	TotalCents       int64
}

// New creates a new cart doc. id is the Firestore docId (deviceId).
// items can be nil (treated as empty).
func New(id string, items []LineItem, now time.Time) (*Cart, error) {
	docID := strings.TrimSpace(id)

	c := &Cart{
		ID:        docID,
		Items:     cloneItems(items),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Add merges item into the cart. item.Quantity is the quantity to add (>= 1)
// and item.ID must already carry a freshly generated id (used only when no
// matching row exists).
//
// Returns the resulting row and merged=true when an existing
// (ProductID, VariantID) row absorbed the quantity.
func (c *Cart) Add(item LineItem, now time.Time) (LineItem, bool, error) {
	if c == nil {
		return LineItem{}, false, ErrInvalidCart
	}

	item.ProductID = strings.TrimSpace(item.ProductID)
	item.VariantID = strings.TrimSpace(item.VariantID)
	if item.ProductID == "" || item.VariantID == "" || item.Quantity <= 0 {
		return LineItem{}, false, ErrInvalidCart
	}
	if strings.TrimSpace(item.Image) == "" {
		item.Image = PlaceholderImage
	}

	idx := c.findByPair(item.ProductID, item.VariantID)
	if idx >= 0 {
		c.Items[idx].Quantity += item.Quantity
		c.touch(now)
		return c.Items[idx], true, c.validate()
	}

	if strings.TrimSpace(item.ID) == "" {
		return LineItem{}, false, ErrInvalidCart
	}
	c.Items = append(c.Items, item)
	c.touch(now)
	return item, false, c.validate()
}

// SetQuantity overwrites the quantity of the row identified by itemID.
// qty <= 0 delegates to Remove (removal semantics, not an error).
// Unknown itemID is a silent no-op (changed=false).
func (c *Cart) SetQuantity(itemID string, qty int, now time.Time) (LineItem, bool, error) {
	if c == nil {
		return LineItem{}, false, ErrInvalidCart
	}

	if qty <= 0 {
		return c.Remove(itemID, now)
	}

	idx := c.findByID(itemID)
	if idx < 0 {
		return LineItem{}, false, nil
	}

	c.Items[idx].Quantity = qty
	c.touch(now)
	return c.Items[idx], true, c.validate()
}

// Remove filters the row identified by itemID out of the cart.
// Idempotent: a second call with the same id is a no-op (removed=false).
func (c *Cart) Remove(itemID string, now time.Time) (LineItem, bool, error) {
	if c == nil {
		return LineItem{}, false, ErrInvalidCart
	}

	idx := c.findByID(itemID)
	if idx < 0 {
		return LineItem{}, false, nil
	}

	removed := c.Items[idx]
	c.Items = append(c.Items[:idx:idx], c.Items[idx+1:]...)
	c.touch(now)
	return removed, true, c.validate()
}

// Clear empties the item list.
func (c *Cart) Clear(now time.Time) error {
	if c == nil {
		return ErrInvalidCart
	}
	c.Items = []LineItem{}
	c.touch(now)
	return c.validate()
}

// Totals recomputes all derived aggregates from the current item list.
// The delivery fee applies only when the cart is non-empty; every value is
// zero for an empty cart.
func (c *Cart) Totals() Totals {
	var t Totals
	if c == nil || len(c.Items) == 0 {
		return t
	}

	for _, it := range c.Items {
		t.TotalItems += it.Quantity
		t.SubtotalCents += it.PriceCents * int64(it.Quantity)
	}
	t.TaxCents = roundHalfUp(float64(t.SubtotalCents) * TaxRate)
	t.DeliveryFeeCents = DeliveryFeeCents
	t.TotalCents = t.SubtotalCents + t.TaxCents + t.DeliveryFeeCents
	return t
}

// ProductIDs returns the distinct set of ProductIDs referenced by the cart,
// in first-seen order.
func (c *Cart) ProductIDs() []string {
	if c == nil {
		return nil
	}
	seen := map[string]struct{}{}
	out := make([]string, 0, len(c.Items))
	for _, it := range c.Items {
		if _, ok := seen[it.ProductID]; ok {
			continue
		}
		seen[it.ProductID] = struct{}{}
		out = append(out, it.ProductID)
	}
	return out
}

// RetainProducts keeps only the rows whose ProductID is in the existing set and
// returns the dropped rows. Used by the reconciliation pass.
func (c *Cart) RetainProducts(existing map[string]struct{}, now time.Time) []LineItem {
	if c == nil || len(c.Items) == 0 {
		return nil
	}

	kept := make([]LineItem, 0, len(c.Items))
	var dropped []LineItem
	for _, it := range c.Items {
		if _, ok := existing[it.ProductID]; ok {
			kept = append(kept, it)
		} else {
			dropped = append(dropped, it)
		}
	}
	if len(dropped) == 0 {
		return nil
	}

	c.Items = kept
	c.touch(now)
	return dropped
}

func (c *Cart) touch(now time.Time) {
	c.UpdatedAt = now
}

func (c *Cart) validate() error {
	if c == nil {
		return ErrInvalidCart
	}
	if strings.TrimSpace(c.ID) == "" {
		return ErrInvalidCart
	}
	if c.CreatedAt.IsZero() || c.UpdatedAt.IsZero() {
		return ErrInvalidCart
	}
	if c.UpdatedAt.Before(c.CreatedAt) {
		return ErrInvalidCart
	}

	for _, it := range c.Items {
		if strings.TrimSpace(it.ID) == "" ||
			strings.TrimSpace(it.ProductID) == "" ||
			strings.TrimSpace(it.VariantID) == "" {
			return ErrInvalidCart
		}
		if it.Quantity <= 0 || it.PriceCents < 0 {
			return ErrInvalidCart
		}
	}
	return nil
}

// ----------------------------
// Helpers
// ----------------------------

func (c *Cart) findByPair(productID, variantID string) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID && c.Items[i].VariantID == variantID {
			return i
		}
	}
	return -1
}

func (c *Cart) findByID(itemID string) int {
	itemID = strings.TrimSpace(itemID)
	if itemID == "" {
		return -1
	}
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			return i
		}
	}
	return -1
}

func cloneItems(items []LineItem) []LineItem {
	if items == nil {
		return []LineItem{}
	}
	out := make([]LineItem, len(items))
	copy(out, items)
	return out
}

func roundHalfUp(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}
