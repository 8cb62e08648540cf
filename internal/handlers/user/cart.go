package user

import (
	"errors"
	"net/http"
	"strconv"

	"lumea_back_end/internal/models"
	"lumea_back_end/internal/store"

	"github.com/gin-gonic/gin"
)

// CartProvider : les opérations du gestionnaire de panier.
type CartProvider interface {
	GetOrCreate(userID uint) (*store.CartView, error)
	AddItem(userID, productID uint, delta int) (*store.CartView, error)
	RemoveItem(userID, itemID uint) (*store.CartView, error)
}

type CartHandler struct {
	carts CartProvider
}

func NewCartHandler(carts CartProvider) *CartHandler {
	return &CartHandler{carts: carts}
}

//
// 🔵 GET /cart
//
func (h *CartHandler) GetCart(c *gin.Context) {
	userID := c.GetUint("user_id")

	view, err := h.carts.GetOrCreate(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier"})
		return
	}
	c.JSON(http.StatusOK, toCartResponse(view))
}

//
// 🟢 POST /cart/items
//
func (h *CartHandler) AddItem(c *gin.Context) {
	userID := c.GetUint("user_id")

	var input struct {
		ProductID uint `json:"product_id" binding:"required"`
		Quantity  *int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Données invalides"})
		return
	}

	// quantité par défaut : 1 ; une valeur négative retire du panier
	delta := 1
	if input.Quantity != nil {
		delta = *input.Quantity
	}

	view, err := h.carts.AddItem(userID, input.ProductID, delta)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour panier"})
		return
	}
	c.JSON(http.StatusOK, toCartResponse(view))
}

//
// 🔴 DELETE /cart/items/:id
//
func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID := c.GetUint("user_id")

	itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "ID invalide"})
		return
	}

	view, err := h.carts.RemoveItem(userID, uint(itemID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour panier"})
		return
	}
	c.JSON(http.StatusOK, toCartResponse(view))
}

// ================== RÉPONSES ==================

type productResponse struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    *string `json:"image_url"`
	Stock       int     `json:"stock"`
	CategoryID  uint    `json:"category_id"`
}

type cartItemResponse struct {
	ID       uint            `json:"id"`
	Product  productResponse `json:"product"`
	Quantity int             `json:"quantity"`
}

type cartResponse struct {
	ID         uint               `json:"id"`
	UserID     uint               `json:"user_id"`
	Items      []cartItemResponse `json:"items"`
	TotalPrice float64            `json:"total_price"`
}

func toProductResponse(p models.Product) productResponse {
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

func toCartResponse(v *store.CartView) cartResponse {
	items := make([]cartItemResponse, 0, len(v.Items))
	for _, item := range v.Items {
		items = append(items, cartItemResponse{
			ID:       item.ID,
			Product:  toProductResponse(item.Product),
			Quantity: item.Quantity,
		})
	}
	return cartResponse{
		ID:         v.ID,
		UserID:     v.UserID,
		Items:      items,
		TotalPrice: v.TotalPrice.InexactFloat64(),
	}
}
