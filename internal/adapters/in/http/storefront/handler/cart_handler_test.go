// internal/adapters/in/http/storefront/handler/cart_handler_test.go
package storefrontHandler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leafline/internal/adapters/out/memory"
	dto "leafline/internal/application/query/storefront/dto"
	usecase "leafline/internal/application/usecase"
	catalogdom "leafline/internal/domain/catalog"
)

func newCartTestServer(t *testing.T) (http.Handler, *memory.ProductRepositoryMem) {
	t.Helper()

	carts := memory.NewCartRepositoryMem()
	products := memory.NewProductRepositoryMem()
	products.Put(catalogdom.Product{
		ID:       "p1",
		Slug:     "blue-dream",
		Name:     "Blue Dream",
		Category: "flower",
		Active:   true,
		Variants: []catalogdom.Variant{
			{ID: "v1", Name: "3.5g", PriceCents: 1500, WeightGrams: 4},
		},
	})

	uc := usecase.NewCartUsecase(carts, products, nil)
	return NewCartHandler(uc), products
}

func doCart(t *testing.T, h http.Handler, method, path, deviceID, body string) (*httptest.ResponseRecorder, dto.CartDTO) {
	t.Helper()

	var rdr *strings.Reader
	if body == "" {
		rdr = strings.NewReader("")
	} else {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	if deviceID != "" {
		req.Header.Set("X-Device-Id", deviceID)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out dto.CartDTO
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec, out
}

func TestCartHandler_GetEmptyCartIs200(t *testing.T) {
	h, _ := newCartTestServer(t)

	rec, cart := doCart(t, h, http.MethodGet, "/storefront/cart", "device-1", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "device-1", cart.DeviceID)
	assert.Empty(t, cart.Items)
	assert.Equal(t, int64(0), cart.TotalCents)
	assert.Equal(t, "$0.00", cart.TotalPrice)
}

func TestCartHandler_MissingDeviceID(t *testing.T) {
	h, _ := newCartTestServer(t)

	rec, _ := doCart(t, h, http.MethodGet, "/storefront/cart", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCartHandler_AddItemThenGet(t *testing.T) {
	h, _ := newCartTestServer(t)

	rec, cart := doCart(t, h, http.MethodPost, "/storefront/cart/items", "device-1",
		`{"productId":"p1","variantId":"v1","quantity":2}`)
	require.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, "Blue Dream", cart.Items[0].Name)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, int64(3000), cart.SubtotalCents)
	assert.Equal(t, int64(308), cart.TaxCents)
	assert.Equal(t, int64(500), cart.DeliveryFeeCents)
	assert.Equal(t, int64(3808), cart.TotalCents)
	assert.Equal(t, "$38.08", cart.TotalPrice)

	rec, cart = doCart(t, h, http.MethodGet, "/storefront/cart", "device-1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, cart.Items, 1)
}

func TestCartHandler_AddUnknownProductIs404(t *testing.T) {
	h, _ := newCartTestServer(t)

	rec, _ := doCart(t, h, http.MethodPost, "/storefront/cart/items", "device-1",
		`{"productId":"ghost","variantId":"v1","quantity":1}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartHandler_AddValidation(t *testing.T) {
	h, _ := newCartTestServer(t)

	rec, _ := doCart(t, h, http.MethodPost, "/storefront/cart/items", "device-1",
		`{"productId":"p1","variantId":"v1","quantity":0}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = doCart(t, h, http.MethodPost, "/storefront/cart/items", "device-1", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCartHandler_SetQuantityAndRemove(t *testing.T) {
	h, _ := newCartTestServer(t)

	_, cart := doCart(t, h, http.MethodPost, "/storefront/cart/items", "device-1",
		`{"productId":"p1","variantId":"v1","quantity":2}`)
	itemID := cart.Items[0].ID

	rec, cart := doCart(t, h, http.MethodPut, "/storefront/cart/items", "device-1",
		`{"itemId":"`+itemID+`","quantity":5}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, cart.Items[0].Quantity)

	rec, cart = doCart(t, h, http.MethodDelete, "/storefront/cart/items", "device-1",
		`{"itemId":"`+itemID+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, cart.Items)
	assert.Equal(t, int64(0), cart.TotalCents)
}

func TestCartHandler_RemoveViaQueryParam(t *testing.T) {
	h, _ := newCartTestServer(t)

	_, cart := doCart(t, h, http.MethodPost, "/storefront/cart/items", "device-1",
		`{"productId":"p1","variantId":"v1","quantity":2}`)
	itemID := cart.Items[0].ID

	rec, cart := doCart(t, h, http.MethodDelete, "/storefront/cart/items?itemId="+itemID, "device-1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, cart.Items)
}

func TestCartHandler_SetQuantityZeroRemoves(t *testing.T) {
	h, _ := newCartTestServer(t)

	_, cart := doCart(t, h, http.MethodPost, "/storefront/cart/items", "device-1",
		`{"productId":"p1","variantId":"v1","quantity":2}`)
	itemID := cart.Items[0].ID

	rec, cart := doCart(t, h, http.MethodPut, "/storefront/cart/items", "device-1",
		`{"itemId":"`+itemID+`","quantity":0}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, cart.Items)
}

func TestCartHandler_ClearCart(t *testing.T) {
	h, _ := newCartTestServer(t)

	doCart(t, h, http.MethodPost, "/storefront/cart/items", "device-1",
		`{"productId":"p1","variantId":"v1","quantity":2}`)

	rec, cart := doCart(t, h, http.MethodDelete, "/storefront/cart", "device-1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, cart.Items)
}

func TestCartHandler_GetPrunesDiscontinuedProducts(t *testing.T) {
	h, products := newCartTestServer(t)

	doCart(t, h, http.MethodPost, "/storefront/cart/items", "device-1",
		`{"productId":"p1","variantId":"v1","quantity":2}`)

	products.Delete("p1")

	rec, cart := doCart(t, h, http.MethodGet, "/storefront/cart", "device-1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, cart.Items, "GET validates the cart against the live catalog")
}

func TestCartHandler_GetKeepsCartWhenCatalogDown(t *testing.T) {
	h, products := newCartTestServer(t)

	doCart(t, h, http.MethodPost, "/storefront/cart/items", "device-1",
		`{"productId":"p1","variantId":"v1","quantity":2}`)

	products.FailLookups = true

	rec, cart := doCart(t, h, http.MethodGet, "/storefront/cart", "device-1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, cart.Items, 1, "catalog outage keeps the unvalidated cart")
}

func TestCartHandler_DevicesAreIsolated(t *testing.T) {
	h, _ := newCartTestServer(t)

	doCart(t, h, http.MethodPost, "/storefront/cart/items", "device-1",
		`{"productId":"p1","variantId":"v1","quantity":2}`)

	rec, cart := doCart(t, h, http.MethodGet, "/storefront/cart", "device-2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, cart.Items)
}

func TestCartHandler_UnknownRouteIs404(t *testing.T) {
	h, _ := newCartTestServer(t)

	rec, _ := doCart(t, h, http.MethodPatch, "/storefront/cart", "device-1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
