// internal/adapters/in/http/storefront/handler/notification_handler.go
package storefrontHandler

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"leafline/internal/adapters/out/notify"
)

// NotificationHandler streams cart/order toasts to the storefront as
// server-sent events. One stream per device; EventSource passes the device id
// as a query param because it cannot set headers.
//
//	GET /storefront/notifications/stream?deviceId=...
type NotificationHandler struct {
	broadcaster *notify.Broadcaster

	// heartbeat keeps intermediaries from closing an idle stream.
	heartbeat time.Duration
}

func NewNotificationHandler(b *notify.Broadcaster) http.Handler {
	return &NotificationHandler{broadcaster: b, heartbeat: 25 * time.Second}
}

func (h *NotificationHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.broadcaster == nil {
		writeErr(w, http.StatusInternalServerError, "notification handler is not configured")
		return
	}
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	deviceID := readDeviceID(r)
	if deviceID == "" {
		writeErr(w, http.StatusBadRequest, "deviceId is required")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeErr(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	events, cancel := h.broadcaster.Subscribe(deviceID)
	defer cancel()

	log.Printf("[notification_handler] stream open deviceId=%q", deviceID)
	defer log.Printf("[notification_handler] stream closed deviceId=%q", deviceID)

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		case n, open := <-events:
			if !open {
				return
			}
			payload, err := json.Marshal(map[string]any{
				"title":       n.Title,
				"description": n.Description,
				"destructive": n.Destructive,
			})
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: toast\ndata: %s\n\n", payload)
			flusher.Flush()
		}
	}
}
