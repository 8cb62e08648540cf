package product

import (
	"errors"
	"net/http"
	"strconv"

	"lumea_back_end/internal/models"
	"lumea_back_end/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ProductProvider : lectures filtrées/paginées et CRUD admin des produits.
type ProductProvider interface {
	ListProducts(page, size int, f store.ProductFilters) ([]models.Product, int64, error)
	GetProduct(id uint) (*models.Product, error)
	CreateProduct(in store.ProductInput) (*models.Product, error)
	UpdateProduct(id uint, in store.ProductInput) (*models.Product, error)
	DeleteProduct(id uint) error
}

type ProductHandler struct {
	catalog ProductProvider
}

func NewProductHandler(catalog ProductProvider) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

//
// 🔵 GET /products : filtres q, min_price, max_price, category_id + pagination
//
func (h *ProductHandler) List(c *gin.Context) {
	page, size := pageParams(c)

	filters := store.ProductFilters{Query: c.Query("q")}
	if v := c.Query("min_price"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filters.MinPrice = &f
		}
	}
	if v := c.Query("max_price"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filters.MaxPrice = &f
		}
	}
	if v := c.Query("category_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 64); err == nil {
			categoryID := uint(id)
			filters.CategoryID = &categoryID
		}
	}

	products, total, err := h.catalog.ListProducts(page, size, filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produits"})
		return
	}

	items := make([]productResponse, 0, len(products))
	for i := range products {
		items = append(items, toProductResponse(&products[i]))
	}
	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"total": total,
		"page":  page,
		"size":  size,
		"pages": store.PageCount(total, size),
	})
}

//
// 🔵 GET /products/:id
//
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	product, err := h.catalog.GetProduct(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produit"})
		return
	}
	c.JSON(http.StatusOK, toProductResponse(product))
}

//
// 🟢 POST /products (admin)
//
func (h *ProductHandler) Create(c *gin.Context) {
	input, ok := bindProductInput(c)
	if !ok {
		return
	}

	product, err := h.catalog.CreateProduct(input)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(product))
}

//
// 🟠 PUT /products/:id (admin)
//
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	input, ok := bindProductInput(c)
	if !ok {
		return
	}

	product, err := h.catalog.UpdateProduct(id, input)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(product))
}

//
// 🔴 DELETE /products/:id (admin)
//
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.catalog.DeleteProduct(id); err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Produit supprimé"})
}

// ================== HELPERS ==================

func bindProductInput(c *gin.Context) (store.ProductInput, bool) {
	var input struct {
		Name        string  `json:"name" binding:"required"`
		Description *string `json:"description"`
		Price       float64 `json:"price" binding:"required,gt=0"`
		ImageURL    *string `json:"image_url"`
		Stock       int     `json:"stock" binding:"min=0"`
		CategoryID  uint    `json:"category_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Données invalides", "details": err.Error()})
		return store.ProductInput{}, false
	}
	return store.ProductInput{
		Name:        input.Name,
		Description: input.Description,
		Price:       decimal.NewFromFloat(input.Price),
		ImageURL:    input.ImageURL,
		Stock:       input.Stock,
		CategoryID:  input.CategoryID,
	}, true
}

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "ID invalide"})
		return 0, false
	}
	return uint(id), true
}

func pageParams(c *gin.Context) (int, int) {
	page := 1
	size := 10

	if v := c.Query("page"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p >= 1 {
			page = p
		}
	}
	if v := c.Query("page_size"); v != "" {
		if s, err := strconv.Atoi(v); err == nil {
			if s < 1 {
				size = 1
			} else if s > 100 {
				size = 100
			} else {
				size = s
			}
		}
	}
	return page, size
}

func respondCatalogError(c *gin.Context, err error) {
	var validation *store.ValidationError
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Ressource introuvable"})
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Msg})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur interne"})
	}
}

type productResponse struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    *string `json:"image_url"`
	Stock       int     `json:"stock"`
	CategoryID  uint    `json:"category_id"`
}

func toProductResponse(p *models.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.InexactFloat64(),
		ImageURL:    p.ImageURL,
		Stock:       p.Stock,
		CategoryID:  p.CategoryID,
	}
}
