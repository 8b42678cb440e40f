// internal/platform/di/storefront/register.go
package storefront

import (
	"encoding/json"
	"log"
	"net/http"

	sfhttp "leafline/internal/adapters/in/http/storefront"
	sfhandler "leafline/internal/adapters/in/http/storefront/handler"
	"leafline/internal/adapters/in/http/middleware"
)

// notImplemented returns a non-nil handler (so deps are never nil) for
// endpoints that are not wired yet.
func notImplemented(name string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotImplemented)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"error": "not_implemented",
			"name":  name,
		})
	})
}

// requireUserAuth wraps handler with middleware.UserAuth (fail-closed).
// If the middleware is not initialized, it returns 503 so the bug is obvious.
func requireUserAuth(mw *middleware.UserAuth, h http.Handler, name string) http.Handler {
	if h == nil {
		h = http.NotFoundHandler()
	}
	if mw == nil || mw.FirebaseAuth == nil {
		log.Printf("[storefront.register] ERROR: user auth is not initialized (endpoint=%s). returning 503", name)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"error": "user_auth_not_initialized",
				"name":  name,
			})
		})
	}
	return mw.Handler(h)
}

// Register constructs handlers and passes them into the storefront router.
func Register(mux *http.ServeMux, cont *Container) {
	if mux == nil || cont == nil {
		return
	}

	var userAuthMW *middleware.UserAuth
	if cont.Infra != nil && cont.Infra.FirebaseAuth != nil {
		userAuthMW = &middleware.UserAuth{FirebaseAuth: cont.Infra.FirebaseAuth}
	} else {
		// fail-closed in requireUserAuth
		log.Printf("[storefront.register] WARN: FirebaseAuth is nil (order endpoints will return 503)")
		userAuthMW = &middleware.UserAuth{FirebaseAuth: nil}
	}

	cartH := notImplemented("Cart")
	catalogH := notImplemented("Catalog")
	orderH := notImplemented("Order")
	notifH := notImplemented("Notification")

	if cont.CartUC != nil {
		cartH = sfhandler.NewCartHandler(cont.CartUC)
	}
	if cont.CatalogQ != nil {
		catalogH = sfhandler.NewCatalogHandler(cont.CatalogQ)
	}
	if cont.OrderUC != nil {
		orderH = requireUserAuth(userAuthMW, sfhandler.NewOrderHandler(cont.OrderUC), "Order")
	}
	if cont.Broadcaster != nil {
		notifH = sfhandler.NewNotificationHandler(cont.Broadcaster)
	}

	sfhttp.Register(mux, sfhttp.Deps{
		Cart:         cartH,
		Catalog:      catalogH,
		Order:        orderH,
		Notification: notifH,
	})
}
