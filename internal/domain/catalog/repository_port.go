// internal/domain/catalog/repository_port.go
package catalog

import "context"

// Repository is a read-mostly port over the products collection.
//
// Storage (Firestore):
// - collection: products
// - docId: productId
// - fields: slug, name, category, description, imageUrl, thcPercent, active,
//   variants(array), createdAt, updatedAt
type Repository interface {
	// GetByID returns the product or ErrNotFound.
	GetByID(ctx context.Context, productID string) (*Product, error)

	// ListActive returns active products for the storefront grid.
	ListActive(ctx context.Context) ([]Product, error)

	// ExistingActiveIDs returns the subset of ids that currently exist as
	// active products. Used by the cart reconciliation pass only.
	ExistingActiveIDs(ctx context.Context, ids []string) (map[string]struct{}, error)
}
