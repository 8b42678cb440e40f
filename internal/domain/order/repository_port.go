// internal/domain/order/repository_port.go
package order

import "context"

// Repository is the persistence port for orders.
//
// Storage (Firestore):
// - collection: orders
// - docId: orderId (uuid)
type Repository interface {
	// Create persists a new order.
	Create(ctx context.Context, o *Order) error

	// GetByID returns the order or ErrNotFound.
	GetByID(ctx context.Context, orderID string) (*Order, error)

	// ListByUser returns the user's orders, newest first.
	ListByUser(ctx context.Context, userID string) ([]Order, error)

	// ListUnnotified returns orders whose confirmation mail has not been sent.
	ListUnnotified(ctx context.Context, limit int) ([]Order, error)

	// MarkNotified flips the Notified flag after a successful send.
	MarkNotified(ctx context.Context, orderID string) error

	// UpdateStatus persists a status transition.
	UpdateStatus(ctx context.Context, orderID string, status Status) error
}

// Archiver is an optional reporting sink (Postgres). Failures are best-effort:
// callers log and move on, the Firestore document stays the source of truth.
type Archiver interface {
	Archive(ctx context.Context, o *Order) error
}
