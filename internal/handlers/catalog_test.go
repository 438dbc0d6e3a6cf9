// internal/handlers/catalog_test.go
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bantconfirm/backend/internal/backend"
	"github.com/bantconfirm/backend/internal/models"
	"github.com/bantconfirm/backend/internal/store"
)

func catalogFixture(t *testing.T) (*gin.Engine, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	client := backend.NewMemory()
	ctx := context.Background()
	for i := 1; i <= 25; i++ {
		category := "CRM"
		if i%2 == 0 {
			category = "ERP"
		}
		require.NoError(t, client.InsertProduct(ctx, &models.Product{
			Title:      fmt.Sprintf("Product %02d", i),
			Slug:       fmt.Sprintf("product-%02d", i),
			Category:   category,
			PriceRange: "10k-50k",
			VendorName: "Acme",
		}))
	}

	s := store.New(client)
	s.FetchAll(ctx)

	handler := NewCatalogHandler(s)
	r := gin.New()
	r.GET("/v1/products", handler.ListProducts)
	r.GET("/v1/products/:slug", handler.GetProduct)
	r.GET("/v1/compare", handler.ListCompare)
	r.POST("/v1/compare/:productId", handler.ToggleCompare)
	r.DELETE("/v1/compare", handler.ClearCompare)
	return r, s
}

type listResponse struct {
	Data []models.Product `json:"data"`
	Meta struct {
		Pagination struct {
			Page       int   `json:"page"`
			Total      int64 `json:"total"`
			TotalPages int   `json:"total_pages"`
		} `json:"pagination"`
	} `json:"meta"`
}

func TestListProductsPagination(t *testing.T) {
	r, _ := catalogFixture(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/v1/products?page=2&limit=10", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp listResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 10)
	assert.Equal(t, 2, resp.Meta.Pagination.Page)
	assert.Equal(t, int64(25), resp.Meta.Pagination.Total)
	assert.Equal(t, 3, resp.Meta.Pagination.TotalPages)
	assert.Equal(t, "25", w.Header().Get("X-Total-Count"))
}

func TestListProductsCategoryFilter(t *testing.T) {
	r, _ := catalogFixture(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/v1/products?category=ERP&limit=100", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp listResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 12)
	for _, p := range resp.Data {
		assert.Equal(t, "ERP", p.Category)
	}
}

func TestListProductsSearch(t *testing.T) {
	r, _ := catalogFixture(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/v1/products?search=product+07", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp listResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Product 07", resp.Data[0].Title)
}

func TestGetProductBySlug(t *testing.T) {
	r, _ := catalogFixture(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/v1/products/product-03", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/v1/products/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCompareEndpoints(t *testing.T) {
	r, s := catalogFixture(t)
	products := s.Products()
	require.NotEmpty(t, products)

	toggle := func(id string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("POST", "/v1/compare/"+id, nil))
		return w
	}

	require.Equal(t, http.StatusOK, toggle(products[0].ID.String()).Code)
	require.Equal(t, http.StatusOK, toggle(products[1].ID.String()).Code)
	assert.Len(t, s.CompareList(), 2)

	// Toggling off.
	require.Equal(t, http.StatusOK, toggle(products[0].ID.String()).Code)
	assert.Len(t, s.CompareList(), 1)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/v1/compare/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("DELETE", "/v1/compare", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, s.CompareList())
}
