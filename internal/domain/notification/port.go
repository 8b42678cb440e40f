// internal/domain/notification/port.go
package notification

import "context"

// Notification is a transient, user-facing message (the storefront renders it
// as a toast). Destructive marks removal-style messages for styling.
type Notification struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Destructive bool   `json:"destructive,omitempty"`
}

// Notifier is a fire-and-forget out-port keyed by deviceId.
// Implementations must never block cart/order flows: no return value is
// consumed by callers beyond logging, and there is no retry.
type Notifier interface {
	Notify(ctx context.Context, deviceID string, n Notification)
}
