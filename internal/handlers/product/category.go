package product

import (
	"errors"
	"net/http"

	"lumea_back_end/internal/models"
	"lumea_back_end/internal/store"

	"github.com/gin-gonic/gin"
)

// CategoryProvider : lectures paginées et CRUD admin des catégories.
type CategoryProvider interface {
	ListCategories(page, size int) ([]models.Category, int64, error)
	GetCategory(id uint) (*models.Category, error)
	CreateCategory(name, slug string) (*models.Category, error)
	UpdateCategory(id uint, name, slug string) (*models.Category, error)
	DeleteCategory(id uint) error
}

type CategoryHandler struct {
	catalog CategoryProvider
}

func NewCategoryHandler(catalog CategoryProvider) *CategoryHandler {
	return &CategoryHandler{catalog: catalog}
}

//
// 🔵 GET /categories
//
func (h *CategoryHandler) List(c *gin.Context) {
	page, size := pageParams(c)

	categories, total, err := h.catalog.ListCategories(page, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture catégories"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"items": categories,
		"total": total,
		"page":  page,
		"size":  size,
		"pages": store.PageCount(total, size),
	})
}

//
// 🔵 GET /categories/:id
//
func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	category, err := h.catalog.GetCategory(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Catégorie introuvable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture catégorie"})
		return
	}
	c.JSON(http.StatusOK, category)
}

//
// 🟢 POST /categories (admin)
//
func (h *CategoryHandler) Create(c *gin.Context) {
	input, ok := bindCategoryInput(c)
	if !ok {
		return
	}

	category, err := h.catalog.CreateCategory(input.Name, input.Slug)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

//
// 🟠 PUT /categories/:id (admin)
//
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	input, ok := bindCategoryInput(c)
	if !ok {
		return
	}

	category, err := h.catalog.UpdateCategory(id, input.Name, input.Slug)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

//
// 🔴 DELETE /categories/:id (admin), les produits de la catégorie suivent
//
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.catalog.DeleteCategory(id); err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Catégorie supprimée"})
}

type categoryInput struct {
	Name string `json:"name" binding:"required"`
	Slug string `json:"slug" binding:"required"`
}

func bindCategoryInput(c *gin.Context) (categoryInput, bool) {
	var input categoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Les champs 'name' et 'slug' sont obligatoires"})
		return categoryInput{}, false
	}
	return input, true
}
