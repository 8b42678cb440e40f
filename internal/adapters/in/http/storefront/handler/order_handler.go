// internal/adapters/in/http/storefront/handler/order_handler.go
package storefrontHandler

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"leafline/internal/adapters/in/http/middleware"
	query "leafline/internal/application/query/storefront"
	usecase "leafline/internal/application/usecase"
	orderdom "leafline/internal/domain/order"
)

// OrderHandler serves the signed-in checkout endpoints. It is mounted behind
// middleware.UserAuth, so a verified Firebase UID is always in context.
//
//	POST /storefront/orders       -> place order from the device cart
//	GET  /storefront/orders       -> list my orders
//	GET  /storefront/orders/{id}  -> track one order
type OrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) http.Handler {
	return &OrderHandler{uc: uc}
}

func (h *OrderHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	path := trimPath(r)

	if h.uc == nil {
		log.Printf("[order_handler] exit status=500 reason=uc is nil elapsed=%s", time.Since(start))
		writeErr(w, http.StatusInternalServerError, "order handler is not configured")
		return
	}

	uid, email, ok := middleware.CurrentUserUIDAndEmail(r)
	if !ok {
		writeErr(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	isCollection := hasSuffixAny(path, "/orders")

	switch {
	case r.Method == http.MethodPost && isCollection:
		h.handlePlace(w, r, uid, email, start)
	case r.Method == http.MethodGet && isCollection:
		h.handleList(w, r, uid, start)
	case r.Method == http.MethodGet:
		orderID := path
		if idx := strings.LastIndex(path, "/"); idx >= 0 {
			orderID = path[idx+1:]
		}
		h.handleTrack(w, r, uid, strings.TrimSpace(orderID), start)
	default:
		writeErr(w, http.StatusNotFound, "not found")
	}
}

func (h *OrderHandler) handlePlace(w http.ResponseWriter, r *http.Request, uid, email string, start time.Time) {
	deviceID := readDeviceID(r)
	if deviceID == "" {
		log.Printf("[order_handler] POST place exit status=400 reason=deviceId missing uid=%q", uid)
		writeErr(w, http.StatusBadRequest, "X-Device-Id header is required")
		return
	}

	var req placeOrderReq
	if err := readJSON(r, &req); err != nil {
		log.Printf("[order_handler] POST place exit status=400 reason=invalid json err=%v", err)
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	contact := orderdom.Contact{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Phone:   strings.TrimSpace(req.Phone),
		Address: strings.TrimSpace(req.Address),
		Note:    strings.TrimSpace(req.Note),
	}
	if contact.Email == "" {
		contact.Email = email
	}
	if contact.Name == "" || contact.Address == "" {
		log.Printf("[order_handler] POST place exit status=400 reason=missing contact fields uid=%q", uid)
		writeErr(w, http.StatusBadRequest, "name and address are required")
		return
	}

	o, err := h.uc.PlaceOrder(r.Context(), deviceID, uid, contact)
	if err != nil {
		h.writeOrderErr(w, "POST place", uid, err)
		return
	}

	log.Printf("[order_handler] POST place ok uid=%q orderId=%q totalCents=%d elapsed=%s",
		uid, o.ID, o.TotalCents, time.Since(start))
	writeJSON(w, http.StatusCreated, query.ToOrderDTO(o))
}

func (h *OrderHandler) handleList(w http.ResponseWriter, r *http.Request, uid string, start time.Time) {
	orders, err := h.uc.List(r.Context(), uid)
	if err != nil {
		h.writeOrderErr(w, "GET list", uid, err)
		return
	}

	out := make([]any, 0, len(orders))
	for i := range orders {
		out = append(out, query.ToOrderDTO(&orders[i]))
	}

	log.Printf("[order_handler] GET list ok uid=%q count=%d elapsed=%s", uid, len(orders), time.Since(start))
	writeJSON(w, http.StatusOK, map[string]any{"orders": out})
}

func (h *OrderHandler) handleTrack(w http.ResponseWriter, r *http.Request, uid, orderID string, start time.Time) {
	if orderID == "" {
		writeErr(w, http.StatusNotFound, "not found")
		return
	}

	o, err := h.uc.Track(r.Context(), uid, orderID)
	if err != nil {
		h.writeOrderErr(w, "GET track", uid, err)
		return
	}

	log.Printf("[order_handler] GET track ok uid=%q orderId=%q status=%q elapsed=%s",
		uid, o.ID, o.Status, time.Since(start))
	writeJSON(w, http.StatusOK, query.ToOrderDTO(o))
}

func (h *OrderHandler) writeOrderErr(w http.ResponseWriter, op, uid string, err error) {
	log.Printf("[order_handler] %s uc error uid=%q err=%v", op, uid, err)

	switch {
	case errors.Is(err, orderdom.ErrEmptyCart):
		writeErr(w, http.StatusConflict, "cart is empty")
	case errors.Is(err, usecase.ErrOrderInvalidArgument), errors.Is(err, orderdom.ErrInvalidOrder):
		writeErr(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, orderdom.ErrNotFound):
		writeErr(w, http.StatusNotFound, "order not found")
	default:
		writeErr(w, http.StatusInternalServerError, err.Error())
	}
}

// -------------------------
// request DTO
// -------------------------

type placeOrderReq struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Note    string `json:"note"`
}
