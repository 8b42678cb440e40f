// internal/adapters/out/memory/order_repository_mem.go
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	orderdom "leafline/internal/domain/order"
)

// OrderRepositoryMem is an in-memory order.Repository for tests and local
// development.
type OrderRepositoryMem struct {
	mu     sync.RWMutex
	orders map[string]orderdom.Order

	// FailCreate simulates a storage write failure.
	FailCreate bool
}

func NewOrderRepositoryMem() *OrderRepositoryMem {
	return &OrderRepositoryMem{orders: map[string]orderdom.Order{}}
}

func (r *OrderRepositoryMem) Create(ctx context.Context, o *orderdom.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailCreate {
		return errStorage
	}
	if o == nil || strings.TrimSpace(o.ID) == "" {
		return orderdom.ErrInvalidOrder
	}

	r.orders[o.ID] = *o
	return nil
}

func (r *OrderRepositoryMem) GetByID(ctx context.Context, orderID string) (*orderdom.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[strings.TrimSpace(orderID)]
	if !ok {
		return nil, orderdom.ErrNotFound
	}
	cp := o
	return &cp, nil
}

func (r *OrderRepositoryMem) ListByUser(ctx context.Context, userID string) ([]orderdom.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []orderdom.Order
	for _, o := range r.orders {
		if o.UserID == strings.TrimSpace(userID) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *OrderRepositoryMem) ListUnnotified(ctx context.Context, limit int) ([]orderdom.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}
	var out []orderdom.Order
	for _, o := range r.orders {
		if !o.Notified {
			out = append(out, o)
		}
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (r *OrderRepositoryMem) MarkNotified(ctx context.Context, orderID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[strings.TrimSpace(orderID)]
	if !ok {
		return orderdom.ErrNotFound
	}
	o.Notified = true
	o.UpdatedAt = time.Now().UTC()
	r.orders[o.ID] = o
	return nil
}

func (r *OrderRepositoryMem) UpdateStatus(ctx context.Context, orderID string, s orderdom.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[strings.TrimSpace(orderID)]
	if !ok {
		return orderdom.ErrNotFound
	}
	o.Status = s
	o.UpdatedAt = time.Now().UTC()
	r.orders[o.ID] = o
	return nil
}
