// internal/adapters/in/http/storefront/handler/cart_handler.go
package storefrontHandler

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	query "leafline/internal/application/query/storefront"
	usecase "leafline/internal/application/usecase"
	cartdom "leafline/internal/domain/cart"
	catalogdom "leafline/internal/domain/catalog"
)

// CartHandler serves the device-keyed cart endpoints.
//
//	GET    /storefront/cart        -> reconcile against catalog, return cart
//	DELETE /storefront/cart        -> clear
//	POST   /storefront/cart/items  -> add item (merge by product+variant)
//	PUT    /storefront/cart/items  -> set quantity (qty<=0 removes)
//	DELETE /storefront/cart/items  -> remove item
type CartHandler struct {
	uc *usecase.CartUsecase
}

func NewCartHandler(uc *usecase.CartUsecase) http.Handler {
	return &CartHandler{uc: uc}
}

func (h *CartHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	path := trimPath(r)

	if h.uc == nil {
		log.Printf("[cart_handler] exit status=500 reason=uc is nil elapsed=%s", time.Since(start))
		writeErr(w, http.StatusInternalServerError, "cart handler is not configured")
		return
	}

	deviceID := readDeviceID(r)
	if deviceID == "" {
		log.Printf("[cart_handler] exit status=400 reason=deviceId missing method=%s path=%q", r.Method, path)
		writeErr(w, http.StatusBadRequest, "X-Device-Id header is required")
		return
	}

	isItems := hasSuffixAny(path, "/cart/items")
	isCart := !isItems && hasSuffixAny(path, "/cart")

	switch {
	case r.Method == http.MethodGet && isCart:
		h.handleGet(w, r, deviceID, start)
	case r.Method == http.MethodDelete && isCart:
		h.handleClear(w, r, deviceID, start)
	case r.Method == http.MethodPost && isItems:
		h.handleAddItem(w, r, deviceID, start)
	case r.Method == http.MethodPut && isItems:
		h.handleSetQuantity(w, r, deviceID, start)
	case r.Method == http.MethodDelete && isItems:
		h.handleRemoveItem(w, r, deviceID, start)
	default:
		log.Printf("[cart_handler] exit status=404 method=%s path=%q elapsed=%s", r.Method, path, time.Since(start))
		writeErr(w, http.StatusNotFound, "not found")
	}
}

// handleGet loads the cart and validates it against the catalog before
// answering. Items whose product disappeared or went inactive are dropped
// here; a reconciliation failure keeps the unvalidated cart.
func (h *CartHandler) handleGet(w http.ResponseWriter, r *http.Request, deviceID string, start time.Time) {
	c, err := h.uc.Reconcile(r.Context(), deviceID)
	if err != nil {
		h.writeCartErr(w, r, "GET cart", deviceID, err)
		return
	}

	log.Printf("[cart_handler] GET cart ok deviceId=%q items=%d elapsed=%s", deviceID, len(c.Items), time.Since(start))
	writeJSON(w, http.StatusOK, query.ToCartDTO(c))
}

func (h *CartHandler) handleClear(w http.ResponseWriter, r *http.Request, deviceID string, start time.Time) {
	c, err := h.uc.Clear(r.Context(), deviceID)
	if err != nil {
		h.writeCartErr(w, r, "DELETE cart", deviceID, err)
		return
	}

	log.Printf("[cart_handler] DELETE cart ok deviceId=%q elapsed=%s", deviceID, time.Since(start))
	writeJSON(w, http.StatusOK, query.ToCartDTO(c))
}

func (h *CartHandler) handleAddItem(w http.ResponseWriter, r *http.Request, deviceID string, start time.Time) {
	var req addItemReq
	if err := readJSON(r, &req); err != nil {
		log.Printf("[cart_handler] POST add-item exit status=400 reason=invalid json err=%v", err)
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	productID := strings.TrimSpace(req.ProductID)
	variantID := strings.TrimSpace(req.VariantID)
	if productID == "" || variantID == "" || req.Quantity <= 0 {
		log.Printf("[cart_handler] POST add-item exit status=400 reason=missing fields productId=%q variantId=%q qty=%d", productID, variantID, req.Quantity)
		writeErr(w, http.StatusBadRequest, "productId, variantId, quantity(>=1) are required")
		return
	}

	c, err := h.uc.AddItem(r.Context(), deviceID, productID, variantID, req.Quantity)
	if err != nil {
		h.writeCartErr(w, r, "POST add-item", deviceID, err)
		return
	}

	log.Printf("[cart_handler] POST add-item ok deviceId=%q productId=%q variantId=%q qty=%d elapsed=%s",
		deviceID, productID, variantID, req.Quantity, time.Since(start))
	writeJSON(w, http.StatusOK, query.ToCartDTO(c))
}

func (h *CartHandler) handleSetQuantity(w http.ResponseWriter, r *http.Request, deviceID string, start time.Time) {
	var req updateItemReq
	if err := readJSON(r, &req); err != nil {
		log.Printf("[cart_handler] PUT set-qty exit status=400 reason=invalid json err=%v", err)
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	itemID := strings.TrimSpace(req.ItemID)
	if itemID == "" {
		log.Printf("[cart_handler] PUT set-qty exit status=400 reason=itemId missing")
		writeErr(w, http.StatusBadRequest, "itemId is required")
		return
	}

	c, err := h.uc.SetItemQuantity(r.Context(), deviceID, itemID, req.Quantity)
	if err != nil {
		h.writeCartErr(w, r, "PUT set-qty", deviceID, err)
		return
	}

	log.Printf("[cart_handler] PUT set-qty ok deviceId=%q itemId=%q qty=%d elapsed=%s",
		deviceID, itemID, req.Quantity, time.Since(start))
	writeJSON(w, http.StatusOK, query.ToCartDTO(c))
}

func (h *CartHandler) handleRemoveItem(w http.ResponseWriter, r *http.Request, deviceID string, start time.Time) {
	// Some clients cannot attach a body to DELETE, so a query param works too.
	itemID := strings.TrimSpace(r.URL.Query().Get("itemId"))
	if itemID == "" {
		var req updateItemReq
		if err := readJSON(r, &req); err != nil {
			log.Printf("[cart_handler] DELETE remove-item exit status=400 reason=invalid json err=%v", err)
			writeErr(w, http.StatusBadRequest, "itemId is required (query param or json body)")
			return
		}
		itemID = strings.TrimSpace(req.ItemID)
	}
	if itemID == "" {
		log.Printf("[cart_handler] DELETE remove-item exit status=400 reason=itemId missing")
		writeErr(w, http.StatusBadRequest, "itemId is required")
		return
	}

	c, err := h.uc.RemoveItem(r.Context(), deviceID, itemID)
	if err != nil {
		h.writeCartErr(w, r, "DELETE remove-item", deviceID, err)
		return
	}

	log.Printf("[cart_handler] DELETE remove-item ok deviceId=%q itemId=%q elapsed=%s", deviceID, itemID, time.Since(start))
	writeJSON(w, http.StatusOK, query.ToCartDTO(c))
}

func (h *CartHandler) writeCartErr(w http.ResponseWriter, r *http.Request, op, deviceID string, err error) {
	log.Printf("[cart_handler] %s uc error deviceId=%q err=%v", op, deviceID, err)

	switch {
	case errors.Is(err, usecase.ErrCartInvalidArgument), errors.Is(err, cartdom.ErrInvalidCart):
		writeErr(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, catalogdom.ErrNotFound), errors.Is(err, catalogdom.ErrVariantNotFound):
		writeErr(w, http.StatusNotFound, err.Error())
	default:
		writeErr(w, http.StatusInternalServerError, err.Error())
	}
}

// -------------------------
// request DTO
// -------------------------

type addItemReq struct {
	ProductID string `json:"productId"`
	VariantID string `json:"variantId"`
	Quantity  int    `json:"quantity"`
}

type updateItemReq struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}
