// internal/adapters/in/http/storefront/router.go
package storefront

import (
	"log"
	"net/http"
)

// Deps is the buyer-facing handler set.
type Deps struct {
	Cart         http.Handler
	Catalog      http.Handler
	Order        http.Handler
	Notification http.Handler
}

// handleSafe registers pattern with h.
// If h is nil, it logs and registers NotFoundHandler instead (so Cloud Run won't crash).
func handleSafe(mux *http.ServeMux, pattern string, h http.Handler, name string) {
	if h == nil {
		log.Printf("[storefront.router] WARN: nil handler: %s pattern=%s (registering NotFoundHandler)", name, pattern)
		h = http.NotFoundHandler()
	}
	mux.Handle(pattern, h)
}

// Register registers storefront routes onto mux.
func Register(mux *http.ServeMux, deps Deps) {
	if mux == nil {
		return
	}

	// cart
	handleSafe(mux, "/storefront/cart", deps.Cart, "Cart")
	handleSafe(mux, "/storefront/cart/", deps.Cart, "Cart")

	// catalog
	handleSafe(mux, "/storefront/catalog", deps.Catalog, "Catalog")
	handleSafe(mux, "/storefront/catalog/", deps.Catalog, "Catalog")

	// orders (handler is pre-wrapped with user auth)
	handleSafe(mux, "/storefront/orders", deps.Order, "Order")
	handleSafe(mux, "/storefront/orders/", deps.Order, "Order")

	// notifications (SSE)
	handleSafe(mux, "/storefront/notifications/stream", deps.Notification, "Notification")
}
