// internal/adapters/out/memory/cart_repository_mem.go
package memory

import (
	"context"
	"strings"
	"sync"

	cartdom "leafline/internal/domain/cart"
)

// CartRepositoryMem is an in-memory cart.Repository for tests and local
// development. Same nil-on-not-found policy as the Firestore adapter.
type CartRepositoryMem struct {
	mu    sync.RWMutex
	carts map[string]cartdom.Cart

	// FailUpsert simulates a storage write failure (quota exceeded).
	FailUpsert bool
	// FailGet simulates unreadable storage.
	FailGet bool

	UpsertCount int
}

func NewCartRepositoryMem() *CartRepositoryMem {
	return &CartRepositoryMem{carts: map[string]cartdom.Cart{}}
}

func (r *CartRepositoryMem) GetByDeviceID(ctx context.Context, deviceID string) (*cartdom.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.FailGet {
		return nil, errStorage
	}

	c, ok := r.carts[strings.TrimSpace(deviceID)]
	if !ok {
		return nil, nil
	}

	cp := c
	cp.Items = append([]cartdom.LineItem(nil), c.Items...)
	return &cp, nil
}

func (r *CartRepositoryMem) Upsert(ctx context.Context, c *cartdom.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.UpsertCount++
	if r.FailUpsert {
		return errStorage
	}
	if c == nil || strings.TrimSpace(c.ID) == "" {
		return cartdom.ErrInvalidCart
	}

	cp := *c
	cp.Items = append([]cartdom.LineItem(nil), c.Items...)
	r.carts[c.ID] = cp
	return nil
}

func (r *CartRepositoryMem) DeleteByDeviceID(ctx context.Context, deviceID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.carts, strings.TrimSpace(deviceID))
	return nil
}
