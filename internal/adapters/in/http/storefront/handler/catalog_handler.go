// internal/adapters/in/http/storefront/handler/catalog_handler.go
package storefrontHandler

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	query "leafline/internal/application/query/storefront"
)

// CatalogHandler serves the public product listing.
//
//	GET /storefront/catalog               -> active products
//	GET /storefront/catalog/{slug-or-id}  -> one product
type CatalogHandler struct {
	q *query.CatalogQuery
}

func NewCatalogHandler(q *query.CatalogQuery) http.Handler {
	return &CatalogHandler{q: q}
}

func (h *CatalogHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	path := trimPath(r)

	if h.q == nil {
		log.Printf("[catalog_handler] exit status=500 reason=query is nil elapsed=%s", time.Since(start))
		writeErr(w, http.StatusInternalServerError, "catalog handler is not configured")
		return
	}
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	// listing
	if hasSuffixAny(path, "/catalog") {
		products, err := h.q.ListActive(r.Context())
		if err != nil {
			log.Printf("[catalog_handler] GET list error err=%v elapsed=%s", err, time.Since(start))
			writeErr(w, http.StatusInternalServerError, err.Error())
			return
		}

		log.Printf("[catalog_handler] GET list ok count=%d elapsed=%s", len(products), time.Since(start))
		writeJSON(w, http.StatusOK, map[string]any{"products": products})
		return
	}

	// detail: last path segment is a slug or a product id
	key := path
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		key = path[idx+1:]
	}
	key = strings.TrimSpace(key)
	if key == "" {
		writeErr(w, http.StatusNotFound, "not found")
		return
	}

	p, err := h.q.GetBySlugOrID(r.Context(), key)
	if err != nil {
		if errors.Is(err, query.ErrNotFound) {
			log.Printf("[catalog_handler] GET detail not found key=%q elapsed=%s", key, time.Since(start))
			writeErr(w, http.StatusNotFound, "product not found")
			return
		}
		log.Printf("[catalog_handler] GET detail error key=%q err=%v elapsed=%s", key, err, time.Since(start))
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}

	log.Printf("[catalog_handler] GET detail ok key=%q elapsed=%s", key, time.Since(start))
	writeJSON(w, http.StatusOK, p)
}
