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

// ReviewProvider : dépôt et lecture des avis produit.
type ReviewProvider interface {
	Create(userID, orderID, productID uint, rating int, comment *string) (*models.Review, error)
	ListByProduct(productID uint) ([]models.Review, error)
}

type ReviewHandler struct {
	reviews ReviewProvider
}

func NewReviewHandler(reviews ReviewProvider) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

//
// 🟢 POST /reviews
//
func (h *ReviewHandler) Create(c *gin.Context) {
	userID := c.GetUint("user_id")

	var input struct {
		OrderID   uint    `json:"order_id" binding:"required"`
		ProductID uint    `json:"product_id" binding:"required"`
		Rating    int     `json:"rating" binding:"required,min=1,max=5"`
		Comment   *string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	review, err := h.reviews.Create(userID, input.OrderID, input.ProductID, input.Rating, input.Comment)
	if err != nil {
		var validation *store.ValidationError
		if errors.As(err, &validation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": validation.Msg})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création avis"})
		return
	}
	c.JSON(http.StatusOK, toReviewResponse(review))
}

//
// 🔵 GET /reviews/product/:id (public)
//
func (h *ReviewHandler) ListByProduct(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "ID invalide"})
		return
	}

	reviews, err := h.reviews.ListByProduct(uint(productID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture avis"})
		return
	}

	out := make([]reviewResponse, 0, len(reviews))
	for i := range reviews {
		out = append(out, toReviewResponse(&reviews[i]))
	}
	c.JSON(http.StatusOK, out)
}

// ================== RÉPONSES ==================

type reviewResponse struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	OrderID   uint      `json:"order_id"`
	ProductID uint      `json:"product_id"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UserName  string    `json:"user_name"`
}

func toReviewResponse(r *models.Review) reviewResponse {
	name := ""
	if r.User.FullName != nil {
		name = *r.User.FullName
	}
	return reviewResponse{
		ID:        r.ID,
		UserID:    r.UserID,
		OrderID:   r.OrderID,
		ProductID: r.ProductID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
		UserName:  name,
	}
}
