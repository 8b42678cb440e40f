// internal/adapters/in/http/storefront/handler/order_handler_test.go
package storefrontHandler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leafline/internal/adapters/in/http/middleware"
	"leafline/internal/adapters/out/memory"
	dto "leafline/internal/application/query/storefront/dto"
	usecase "leafline/internal/application/usecase"
	catalogdom "leafline/internal/domain/catalog"
)

type orderFixture struct {
	orderH http.Handler
	cartH  http.Handler
}

func newOrderTestServer(t *testing.T) orderFixture {
	t.Helper()

	carts := memory.NewCartRepositoryMem()
	products := memory.NewProductRepositoryMem()
	orders := memory.NewOrderRepositoryMem()
	products.Put(catalogdom.Product{
		ID:     "p1",
		Slug:   "blue-dream",
		Name:   "Blue Dream",
		Active: true,
		Variants: []catalogdom.Variant{
			{ID: "v1", Name: "3.5g", PriceCents: 1500, WeightGrams: 4},
		},
	})

	return orderFixture{
		orderH: NewOrderHandler(usecase.NewOrderUsecase(orders, carts, nil)),
		cartH:  NewCartHandler(usecase.NewCartUsecase(carts, products, nil)),
	}
}

func (f orderFixture) do(t *testing.T, method, path, deviceID, uid, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if deviceID != "" {
		req.Header.Set("X-Device-Id", deviceID)
	}
	if uid != "" {
		req = req.WithContext(middleware.WithUser(req.Context(), uid, uid+"@example.com"))
	}
	rec := httptest.NewRecorder()
	f.orderH.ServeHTTP(rec, req)
	return rec
}

func (f orderFixture) fillCart(t *testing.T, deviceID string) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/storefront/cart/items",
		strings.NewReader(`{"productId":"p1","variantId":"v1","quantity":2}`))
	req.Header.Set("X-Device-Id", deviceID)
	rec := httptest.NewRecorder()
	f.cartH.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestOrderHandler_PlaceOrder(t *testing.T) {
	f := newOrderTestServer(t)
	f.fillCart(t, "device-1")

	rec := f.do(t, http.MethodPost, "/storefront/orders", "device-1", "user-1",
		`{"name":"Jordan Hayes","address":"12 Pine St, Denver CO"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var o dto.OrderDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &o))
	assert.NotEmpty(t, o.ID)
	assert.Equal(t, "pending", o.Status)
	assert.Equal(t, int64(3808), o.TotalCents)
	assert.Equal(t, "$38.08", o.TotalPrice)
}

func TestOrderHandler_PlaceOrder_EmptyCartIs409(t *testing.T) {
	f := newOrderTestServer(t)

	rec := f.do(t, http.MethodPost, "/storefront/orders", "device-1", "user-1",
		`{"name":"Jordan Hayes","address":"12 Pine St"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestOrderHandler_PlaceOrder_MissingContactIs400(t *testing.T) {
	f := newOrderTestServer(t)
	f.fillCart(t, "device-1")

	rec := f.do(t, http.MethodPost, "/storefront/orders", "device-1", "user-1",
		`{"name":"Jordan Hayes"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrderHandler_NoAuthIs401(t *testing.T) {
	f := newOrderTestServer(t)

	rec := f.do(t, http.MethodGet, "/storefront/orders", "device-1", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOrderHandler_ListAndTrack(t *testing.T) {
	f := newOrderTestServer(t)
	f.fillCart(t, "device-1")

	rec := f.do(t, http.MethodPost, "/storefront/orders", "device-1", "user-1",
		`{"name":"Jordan Hayes","address":"12 Pine St"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var placed dto.OrderDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &placed))

	rec = f.do(t, http.MethodGet, "/storefront/orders", "", "user-1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var listing struct {
		Orders []dto.OrderDTO `json:"orders"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listing))
	require.Len(t, listing.Orders, 1)
	assert.Equal(t, placed.ID, listing.Orders[0].ID)

	rec = f.do(t, http.MethodGet, "/storefront/orders/"+placed.ID, "", "user-1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	// another user cannot see it
	rec = f.do(t, http.MethodGet, "/storefront/orders/"+placed.ID, "", "user-2", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
