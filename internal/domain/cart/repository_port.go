// internal/domain/cart/repository_port.go
package cart

import "context"

// Repository is a persistence port for Cart.
//
// Storage (Firestore):
// - collection: carts
// - docId: deviceId (the browser/device-scoped key; cart state is not tied to
//   a signed-in identity)
// - fields: items(array), createdAt, updatedAt
//
// Concurrency note: two devices never share a docId, but two tabs on the same
// device can race. Writes are last-writer-wins at the storage layer; this is
// an accepted limitation, not coordinated here.
type Repository interface {
	// GetByDeviceID returns the cart for the device.
	// Not-found policy: return (nil, nil) and let the application layer treat
	// nil as "empty cart".
	GetByDeviceID(ctx context.Context, deviceID string) (*Cart, error)

	// Upsert saves the cart (create or update, full-doc overwrite).
	Upsert(ctx context.Context, c *Cart) error

	// DeleteByDeviceID deletes the cart doc for the device.
	DeleteByDeviceID(ctx context.Context, deviceID string) error
}
