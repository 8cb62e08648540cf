package product

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"lumea_back_end/internal/models"
	"lumea_back_end/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock : filtre et pagine comme le store réel ---

type mockCatalog struct {
	products []models.Product
	err      error

	lastPage    int
	lastSize    int
	lastFilters store.ProductFilters

	created store.ProductInput
	deleted uint
}

func (m *mockCatalog) ListProducts(page, size int, f store.ProductFilters) ([]models.Product, int64, error) {
	m.lastPage = page
	m.lastSize = size
	m.lastFilters = f
	if m.err != nil {
		return nil, 0, m.err
	}

	var filtered []models.Product
	for _, p := range m.products {
		if f.Query != "" {
			desc := ""
			if p.Description != nil {
				desc = *p.Description
			}
			if !strings.Contains(p.Name, f.Query) && !strings.Contains(desc, f.Query) {
				continue
			}
		}
		if f.MinPrice != nil && p.Price.InexactFloat64() < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && p.Price.InexactFloat64() > *f.MaxPrice {
			continue
		}
		if f.CategoryID != nil && p.CategoryID != *f.CategoryID {
			continue
		}
		filtered = append(filtered, p)
	}

	total := int64(len(filtered))
	start := store.PageOffset(page, size)
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + size
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end], total, nil
}

func (m *mockCatalog) GetProduct(id uint) (*models.Product, error) {
	for _, p := range m.products {
		if p.ID == id {
			product := p
			return &product, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *mockCatalog) CreateProduct(in store.ProductInput) (*models.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.created = in
	return &models.Product{ID: 100, Name: in.Name, Price: in.Price, Stock: in.Stock, CategoryID: in.CategoryID}, nil
}

func (m *mockCatalog) UpdateProduct(id uint, in store.ProductInput) (*models.Product, error) {
	if _, err := m.GetProduct(id); err != nil {
		return nil, err
	}
	return &models.Product{ID: id, Name: in.Name, Price: in.Price, Stock: in.Stock, CategoryID: in.CategoryID}, nil
}

func (m *mockCatalog) DeleteProduct(id uint) error {
	if _, err := m.GetProduct(id); err != nil {
		return err
	}
	m.deleted = id
	return nil
}

// --- Helpers ---

func newProduct(id uint, name string, price float64, categoryID uint) models.Product {
	return models.Product{ID: id, Name: name, Price: decimal.NewFromFloat(price), CategoryID: categoryID}
}

func newProductRouter(m *mockCatalog) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	h := NewProductHandler(m)
	r.GET("/products", h.List)
	r.GET("/products/:id", h.Get)
	r.POST("/products", h.Create)
	r.DELETE("/products/:id", h.Delete)
	return r
}

type pagedResponse struct {
	Items []productResponse `json:"items"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Size  int               `json:"size"`
	Pages int               `json:"pages"`
}

func get(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func catalogOf(n int) *mockCatalog {
	m := &mockCatalog{}
	for i := 1; i <= n; i++ {
		m.products = append(m.products, newProduct(uint(i), fmt.Sprintf("Produit %02d", i), float64(i), 1))
	}
	return m
}

// --- Tests ---

func TestListProductsPagination(t *testing.T) {
	m := catalogOf(25)
	r := newProductRouter(m)

	w := get(t, r, "/products?page=1&page_size=10")
	require.Equal(t, http.StatusOK, w.Code)

	var resp pagedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(25), resp.Total)
	assert.Equal(t, 3, resp.Pages) // ceil(25/10)
	assert.Len(t, resp.Items, 10)
}

// Concaténer toutes les pages dans l'ordre redonne l'ensemble complet.
func TestListProductsPagesConcatenate(t *testing.T) {
	m := catalogOf(25)
	r := newProductRouter(m)

	var seen []uint
	for page := 1; page <= 3; page++ {
		w := get(t, r, fmt.Sprintf("/products?page=%d&page_size=10", page))
		require.Equal(t, http.StatusOK, w.Code)

		var resp pagedResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.LessOrEqual(t, len(resp.Items), 10)
		for _, item := range resp.Items {
			seen = append(seen, item.ID)
		}
	}

	require.Len(t, seen, 25)
	for i, id := range seen {
		assert.Equal(t, uint(i+1), id)
	}
}

func TestListProductsFiltersForwarded(t *testing.T) {
	m := catalogOf(5)
	r := newProductRouter(m)

	w := get(t, r, "/products?q=Produit&min_price=2&max_price=4&category_id=1")
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "Produit", m.lastFilters.Query)
	require.NotNil(t, m.lastFilters.MinPrice)
	assert.Equal(t, 2.0, *m.lastFilters.MinPrice)
	require.NotNil(t, m.lastFilters.MaxPrice)
	assert.Equal(t, 4.0, *m.lastFilters.MaxPrice)
	require.NotNil(t, m.lastFilters.CategoryID)
	assert.Equal(t, uint(1), *m.lastFilters.CategoryID)

	var resp pagedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(3), resp.Total) // prix 2, 3, 4
}

func TestListProductsDefaultsAndClamping(t *testing.T) {
	m := catalogOf(3)
	r := newProductRouter(m)

	get(t, r, "/products")
	assert.Equal(t, 1, m.lastPage)
	assert.Equal(t, 10, m.lastSize)

	get(t, r, "/products?page_size=1000")
	assert.Equal(t, 100, m.lastSize)

	get(t, r, "/products?page=0&page_size=0")
	assert.Equal(t, 1, m.lastPage)
	assert.Equal(t, 1, m.lastSize)
}

func TestGetProductNotFound(t *testing.T) {
	m := catalogOf(1)
	r := newProductRouter(m)

	w := get(t, r, "/products/99")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateProduct(t *testing.T) {
	m := catalogOf(0)
	r := newProductRouter(m)

	body, _ := json.Marshal(gin.H{"name": "Tabouret chêne", "price": 49.90, "stock": 3, "category_id": 2})
	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Tabouret chêne", m.created.Name)
	assert.True(t, m.created.Price.Equal(decimal.NewFromFloat(49.90)))
}

func TestCreateProductRejectsInvalidPrice(t *testing.T) {
	m := catalogOf(0)
	r := newProductRouter(m)

	body, _ := json.Marshal(gin.H{"name": "Tabouret", "price": -1, "category_id": 2})
	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestDeleteProduct(t *testing.T) {
	m := catalogOf(2)
	r := newProductRouter(m)

	req := httptest.NewRequest(http.MethodDelete, "/products/2", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(2), m.deleted)

	req = httptest.NewRequest(http.MethodDelete, "/products/99", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
