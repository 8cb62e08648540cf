package admin

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"lumea_back_end/internal/models"
	"lumea_back_end/internal/store"

	"github.com/gin-gonic/gin"
)

// OrderAdminProvider : les opérations admin sur les commandes.
type OrderAdminProvider interface {
	ListAll(search string) ([]models.Order, error)
	SetStatus(orderID uint, status string) (*models.Order, error)
	Stats() (int64, error)
}

type OrderHandler struct {
	orders OrderAdminProvider
}

func NewOrderHandler(orders OrderAdminProvider) *OrderHandler {
	return &OrderHandler{orders: orders}
}

//
// 🔵 GET /orders/admin/all?q=
//
func (h *OrderHandler) ListAll(c *gin.Context) {
	orders, err := h.orders.ListAll(c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture commandes"})
		return
	}
	c.JSON(http.StatusOK, toOrderResponses(orders))
}

//
// 🟠 PUT /orders/:id/status : écrasement brut, hors machine à états.
// C'est le chemin d'expédition (`shipped`) et de correction opérationnelle.
//
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "ID invalide"})
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Statut requis"})
		return
	}

	order, err := h.orders.SetStatus(uint(orderID), input.Status)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour commande"})
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

//
// 🔵 GET /orders/admin/stats
//
func (h *OrderHandler) Stats(c *gin.Context) {
	count, err := h.orders.Stats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture statistiques"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"pending_count": count})
}

// ================== RÉPONSES ==================

type orderItemResponse struct {
	ID              uint    `json:"id"`
	ProductID       *uint   `json:"product_id"`
	ProductName     string  `json:"product_name"`
	Quantity        int     `json:"quantity"`
	PriceAtPurchase float64 `json:"price_at_purchase"`
}

type orderResponse struct {
	ID              uint                `json:"id"`
	UserID          uint                `json:"user_id"`
	TotalPrice      float64             `json:"total_price"`
	Status          string              `json:"status"`
	ShippingAddress string              `json:"shipping_address"`
	CreatedAt       time.Time           `json:"created_at"`
	Items           []orderItemResponse `json:"items"`
}

func toOrderResponse(o *models.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		name := ""
		if item.Product != nil {
			name = item.Product.Name
		}
		items = append(items, orderItemResponse{
			ID:              item.ID,
			ProductID:       item.ProductID,
			ProductName:     name,
			Quantity:        item.Quantity,
			PriceAtPurchase: item.PriceAtPurchase.InexactFloat64(),
		})
	}
	return orderResponse{
		ID:              o.ID,
		UserID:          o.UserID,
		TotalPrice:      o.TotalPrice.InexactFloat64(),
		Status:          o.Status,
		ShippingAddress: o.ShippingAddress,
		CreatedAt:       o.CreatedAt,
		Items:           items,
	}
}

func toOrderResponses(orders []models.Order) []orderResponse {
	out := make([]orderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, toOrderResponse(&orders[i]))
	}
	return out
}
