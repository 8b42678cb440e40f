// internal/application/usecase/cart_usecase.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	cartdom "leafline/internal/domain/cart"
	catalogdom "leafline/internal/domain/catalog"
	notifdom "leafline/internal/domain/notification"
)

var (
	ErrCartInvalidArgument = errors.New("cart_usecase: invalid argument")
)

// Clock provides current time (for testability).
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// CartUsecase coordinates cart operations: pure transitions on the Cart
// aggregate, plus the persistence and notification side effects around them.
//
// Failure policy (deliberate, buyer-facing):
//   - a failed load degrades to an empty cart
//   - a failed persist is logged and the mutated cart is returned anyway
//   - a failed catalog lookup during reconciliation keeps the unvalidated cart
//
// Nothing in here propagates an error that would block the shopper, except
// AddItem when the product/variant genuinely does not exist.
type CartUsecase struct {
	repo     cartdom.Repository
	catalog  catalogdom.Repository
	notifier notifdom.Notifier
	clock    Clock
	newID    func() string
}

func NewCartUsecase(repo cartdom.Repository, catalog catalogdom.Repository, notifier notifdom.Notifier) *CartUsecase {
	return &CartUsecase{
		repo:     repo,
		catalog:  catalog,
		notifier: notifier,
		clock:    systemClock{},
		newID:    uuid.NewString,
	}
}

// NewCartUsecaseWithClock is useful for tests.
func NewCartUsecaseWithClock(repo cartdom.Repository, catalog catalogdom.Repository, notifier notifdom.Notifier, clock Clock) *CartUsecase {
	uc := NewCartUsecase(repo, catalog, notifier)
	if clock != nil {
		uc.clock = clock
	}
	return uc
}

// GetOrCreate returns the device's cart; a missing or unreadable doc becomes a
// fresh empty cart (never an error to the caller).
func (uc *CartUsecase) GetOrCreate(ctx context.Context, deviceID string) (*cartdom.Cart, error) {
	did := strings.TrimSpace(deviceID)
	if did == "" {
		return nil, ErrCartInvalidArgument
	}

	now := uc.clock.Now()

	c, err := uc.repo.GetByDeviceID(ctx, did)
	if err != nil {
		// Corrupt or unreadable storage falls back to an empty cart.
		log.Printf("[cart_usecase] load failed, falling back to empty cart deviceId=%q err=%v", did, err)
		c = nil
	}
	if c == nil {
		return cartdom.New(did, nil, now)
	}
	return c, nil
}

// AddItem resolves the product+variant once, snapshots its display data into a
// line item, and merge-adds it to the cart (additive on an existing
// (productId, variantId) pair, append otherwise).
func (uc *CartUsecase) AddItem(ctx context.Context, deviceID, productID, variantID string, qty int) (*cartdom.Cart, error) {
	did := strings.TrimSpace(deviceID)
	pid := strings.TrimSpace(productID)
	vid := strings.TrimSpace(variantID)
	if did == "" || pid == "" || vid == "" {
		return nil, ErrCartInvalidArgument
	}
	if qty <= 0 {
		qty = 1
	}

	p, err := uc.catalog.GetByID(ctx, pid)
	if err != nil {
		return nil, fmt.Errorf("cart_usecase: add item: %w", err)
	}
	v, err := p.Variant(vid)
	if err != nil {
		return nil, fmt.Errorf("cart_usecase: add item: %w", err)
	}

	c, err := uc.GetOrCreate(ctx, did)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	item := cartdom.LineItem{
		ID:         uc.newID(),
		ProductID:  p.ID,
		VariantID:  v.ID,
		Name:       p.Name,
		PriceCents: v.PriceCents,
		Quantity:   qty,
		Image:      p.ImageURL,
		Category:   p.Category,
		Variant: cartdom.VariantSnapshot{
			Name:        v.Name,
			WeightGrams: v.WeightGrams,
		},
	}

	row, merged, err := c.Add(item, now)
	if err != nil {
		return nil, err
	}

	uc.persist(ctx, c)

	if merged {
		uc.notify(ctx, did, notifdom.Notification{
			Title:       "Cart updated",
			Description: fmt.Sprintf("%s (%s) quantity is now %d", row.Name, row.Variant.Name, row.Quantity),
		})
	} else {
		uc.notify(ctx, did, notifdom.Notification{
			Title:       "Added to cart",
			Description: fmt.Sprintf("%s (%s)", row.Name, row.Variant.Name),
		})
	}

	return c, nil
}

// SetItemQuantity overwrites the quantity of the line item (not additive).
// qty <= 0 routes to removal. Unknown itemId is a silent no-op.
func (uc *CartUsecase) SetItemQuantity(ctx context.Context, deviceID, itemID string, qty int) (*cartdom.Cart, error) {
	did := strings.TrimSpace(deviceID)
	iid := strings.TrimSpace(itemID)
	if did == "" || iid == "" {
		return nil, ErrCartInvalidArgument
	}

	if qty <= 0 {
		return uc.RemoveItem(ctx, did, iid)
	}

	c, err := uc.GetOrCreate(ctx, did)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	row, changed, err := c.SetQuantity(iid, qty, now)
	if err != nil {
		return nil, err
	}
	if !changed {
		return c, nil
	}

	uc.persist(ctx, c)
	uc.notify(ctx, did, notifdom.Notification{
		Title:       "Cart updated",
		Description: fmt.Sprintf("%s quantity set to %d", row.Name, row.Quantity),
	})
	return c, nil
}

// RemoveItem filters the line item out. Idempotent: an unknown itemId is a
// silent no-op with no notification.
func (uc *CartUsecase) RemoveItem(ctx context.Context, deviceID, itemID string) (*cartdom.Cart, error) {
	did := strings.TrimSpace(deviceID)
	iid := strings.TrimSpace(itemID)
	if did == "" || iid == "" {
		return nil, ErrCartInvalidArgument
	}

	c, err := uc.GetOrCreate(ctx, did)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	removed, ok, err := c.Remove(iid, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return c, nil
	}

	uc.persist(ctx, c)
	uc.notify(ctx, did, notifdom.Notification{
		Title:       "Removed from cart",
		Description: removed.Name,
		Destructive: true,
	})
	return c, nil
}

// Clear empties the cart and persists the empty state.
func (uc *CartUsecase) Clear(ctx context.Context, deviceID string) (*cartdom.Cart, error) {
	did := strings.TrimSpace(deviceID)
	if did == "" {
		return nil, ErrCartInvalidArgument
	}

	c, err := uc.GetOrCreate(ctx, did)
	if err != nil {
		return nil, err
	}

	if err := c.Clear(uc.clock.Now()); err != nil {
		return nil, err
	}

	uc.persist(ctx, c)
	uc.notify(ctx, did, notifdom.Notification{
		Title:       "Cart cleared",
		Description: "All items were removed from your cart",
		Destructive: true,
	})
	return c, nil
}

// Reconcile validates the stored cart against the live catalog and silently
// drops line items whose product no longer exists (discontinued), surfacing a
// single plural-aware notification. Runs on cart read; idempotent, so repeated
// runs are harmless.
//
// If the catalog query fails, the original unvalidated cart is kept rather
// than discarding user data.
func (uc *CartUsecase) Reconcile(ctx context.Context, deviceID string) (*cartdom.Cart, error) {
	did := strings.TrimSpace(deviceID)
	if did == "" {
		return nil, ErrCartInvalidArgument
	}

	c, err := uc.GetOrCreate(ctx, did)
	if err != nil {
		return nil, err
	}
	if len(c.Items) == 0 {
		return c, nil
	}

	existing, err := uc.catalog.ExistingActiveIDs(ctx, c.ProductIDs())
	if err != nil {
		log.Printf("[cart_usecase] reconcile skipped (catalog unavailable) deviceId=%q err=%v", did, err)
		return c, nil
	}

	dropped := c.RetainProducts(existing, uc.clock.Now())
	if len(dropped) == 0 {
		return c, nil
	}

	uc.persist(ctx, c)

	word := "items"
	if len(dropped) == 1 {
		word = "item"
	}
	uc.notify(ctx, did, notifdom.Notification{
		Title:       "Cart updated",
		Description: fmt.Sprintf("Removed %d outdated %s from cart", len(dropped), word),
		Destructive: true,
	})
	return c, nil
}

// persist is write-through and non-blocking for the shopper: a failed write is
// logged and the in-memory cart stays authoritative for this response.
func (uc *CartUsecase) persist(ctx context.Context, c *cartdom.Cart) {
	if err := uc.repo.Upsert(ctx, c); err != nil {
		log.Printf("[cart_usecase] persist failed (continuing with in-memory cart) deviceId=%q err=%v", c.ID, err)
	}
}

// notify is fire-and-forget; the Notifier contract already swallows delivery
// problems.
func (uc *CartUsecase) notify(ctx context.Context, deviceID string, n notifdom.Notification) {
	if uc.notifier == nil {
		return
	}
	uc.notifier.Notify(ctx, deviceID, n)
}
