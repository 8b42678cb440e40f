// internal/adapters/out/memory/product_repository_mem.go
package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	catalogdom "leafline/internal/domain/catalog"
)

var errStorage = errors.New("memory: storage unavailable")

// ProductRepositoryMem is an in-memory catalog.Repository for tests and local
// development, seeded through Put.
type ProductRepositoryMem struct {
	mu       sync.RWMutex
	products map[string]catalogdom.Product

	// FailLookups simulates the catalog service being unreachable.
	FailLookups bool
}

func NewProductRepositoryMem() *ProductRepositoryMem {
	return &ProductRepositoryMem{products: map[string]catalogdom.Product{}}
}

func (r *ProductRepositoryMem) Put(p catalogdom.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[p.ID] = p
}

func (r *ProductRepositoryMem) Delete(productID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.products, productID)
}

func (r *ProductRepositoryMem) GetByID(ctx context.Context, productID string) (*catalogdom.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.FailLookups {
		return nil, errStorage
	}

	p, ok := r.products[strings.TrimSpace(productID)]
	if !ok {
		return nil, catalogdom.ErrNotFound
	}
	cp := p
	return &cp, nil
}

func (r *ProductRepositoryMem) ListActive(ctx context.Context) ([]catalogdom.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.FailLookups {
		return nil, errStorage
	}

	var out []catalogdom.Product
	for _, p := range r.products {
		if p.Active {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *ProductRepositoryMem) ExistingActiveIDs(ctx context.Context, ids []string) (map[string]struct{}, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.FailLookups {
		return nil, errStorage
	}

	existing := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if p, ok := r.products[strings.TrimSpace(id)]; ok && p.Active {
			existing[p.ID] = struct{}{}
		}
	}
	return existing, nil
}
