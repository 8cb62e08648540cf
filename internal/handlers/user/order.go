package user

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"lumea_back_end/internal/models"
	"lumea_back_end/internal/store"

	"github.com/gin-gonic/gin"
)

// OrderProvider : les opérations du workflow de commande côté client.
type OrderProvider interface {
	Checkout(userID uint, shippingAddress string) (*models.Order, error)
	Get(id uint) (*models.Order, error)
	ListByUser(userID uint) ([]models.Order, error)
	Pay(userID, orderID uint) (*models.Order, error)
	Receive(userID, orderID uint) (*models.Order, error)
	Cancel(userID, orderID uint, admin bool) (*models.Order, error)
}

type OrderHandler struct {
	orders OrderProvider
}

func NewOrderHandler(orders OrderProvider) *OrderHandler {
	return &OrderHandler{orders: orders}
}

//
// 🟢 POST /orders (checkout du panier)
//
func (h *OrderHandler) Create(c *gin.Context) {
	userID := c.GetUint("user_id")

	var input struct {
		ShippingAddress string `json:"shipping_address" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Adresse de livraison requise"})
		return
	}

	order, err := h.orders.Checkout(userID, input.ShippingAddress)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

//
// 🔵 GET /orders
//
func (h *OrderHandler) ListMine(c *gin.Context) {
	userID := c.GetUint("user_id")

	orders, err := h.orders.ListByUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture commandes"})
		return
	}
	c.JSON(http.StatusOK, toOrderResponses(orders))
}

//
// 🔵 GET /orders/:id
//
func (h *OrderHandler) Get(c *gin.Context) {
	userID := c.GetUint("user_id")

	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	order, err := h.orders.Get(orderID)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	if order.UserID != userID && c.GetString("role") != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Vous n'êtes pas autorisé à consulter cette commande"})
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

//
// 🟢 POST /orders/:id/pay : pending → processing, propriétaire seulement
//
func (h *OrderHandler) Pay(c *gin.Context) {
	h.doTransition(c, h.orders.Pay)
}

//
// 🟢 POST /orders/:id/receive : shipped → completed, propriétaire seulement
//
func (h *OrderHandler) Receive(c *gin.Context) {
	h.doTransition(c, h.orders.Receive)
}

//
// 🟠 POST /orders/:id/cancel : pending|processing → cancelled selon le rôle
//
func (h *OrderHandler) Cancel(c *gin.Context) {
	userID := c.GetUint("user_id")
	admin := c.GetString("role") == models.RoleAdmin

	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	order, err := h.orders.Cancel(userID, orderID, admin)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

func (h *OrderHandler) doTransition(c *gin.Context, fn func(userID, orderID uint) (*models.Order, error)) {
	userID := c.GetUint("user_id")

	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	order, err := fn(userID, orderID)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

func orderIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "ID invalide"})
		return 0, false
	}
	return uint(id), true
}

// respondOrderError traduit les erreurs du workflow en statut HTTP.
func respondOrderError(c *gin.Context, err error) {
	var invalidState *store.InvalidStateError
	switch {
	case errors.Is(err, store.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le panier est vide"})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
	case errors.Is(err, store.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Vous n'êtes pas autorisé à modifier cette commande"})
	case errors.As(err, &invalidState):
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidState.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur interne"})
	}
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
