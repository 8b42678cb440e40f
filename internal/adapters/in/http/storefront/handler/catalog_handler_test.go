// internal/adapters/in/http/storefront/handler/catalog_handler_test.go
package storefrontHandler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leafline/internal/adapters/out/memory"
	query "leafline/internal/application/query/storefront"
	dto "leafline/internal/application/query/storefront/dto"
	catalogdom "leafline/internal/domain/catalog"
)

func newCatalogTestServer(t *testing.T) http.Handler {
	t.Helper()

	products := memory.NewProductRepositoryMem()
	products.Put(catalogdom.Product{
		ID:         "p1",
		Slug:       "blue-dream",
		Name:       "Blue Dream",
		Category:   "flower",
		ImageURL:   "/images/blue-dream.jpg",
		THCPercent: 21.5,
		Active:     true,
		Variants: []catalogdom.Variant{
			{ID: "v1", Name: "3.5g", PriceCents: 1500, WeightGrams: 4},
			{ID: "v2", Name: "7g", PriceCents: 2800, WeightGrams: 7},
		},
	})
	products.Put(catalogdom.Product{
		ID:     "p2",
		Slug:   "retired-strain",
		Name:   "Retired Strain",
		Active: false,
		Variants: []catalogdom.Variant{
			{ID: "v1", Name: "3.5g", PriceCents: 900, WeightGrams: 4},
		},
	})

	return NewCatalogHandler(query.NewCatalogQuery(products))
}

func TestCatalogHandler_ListActiveOnly(t *testing.T) {
	h := newCatalogTestServer(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/storefront/catalog", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		Products []dto.ProductDTO `json:"products"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out.Products, 1, "inactive products are hidden")
	assert.Equal(t, "blue-dream", out.Products[0].Slug)
	require.Len(t, out.Products[0].Variants, 2)
	assert.Equal(t, "$15.00", out.Products[0].Variants[0].Price)
}

func TestCatalogHandler_DetailBySlug(t *testing.T) {
	h := newCatalogTestServer(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/storefront/catalog/blue-dream", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var p dto.ProductDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, "p1", p.ID)
	assert.Equal(t, 21.5, p.THCPercent)
}

func TestCatalogHandler_DetailByID(t *testing.T) {
	h := newCatalogTestServer(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/storefront/catalog/p1", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var p dto.ProductDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, "blue-dream", p.Slug)
}

func TestCatalogHandler_UnknownKeyIs404(t *testing.T) {
	h := newCatalogTestServer(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/storefront/catalog/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCatalogHandler_InactiveProductIs404(t *testing.T) {
	h := newCatalogTestServer(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/storefront/catalog/p2", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCatalogHandler_MethodNotAllowed(t *testing.T) {
	h := newCatalogTestServer(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/storefront/catalog", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
