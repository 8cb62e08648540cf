package admin

import (
	"errors"
	"net/http"
	"strconv"

	"lumea_back_end/internal/models"
	"lumea_back_end/internal/store"

	"github.com/gin-gonic/gin"
)

// UserAdminProvider : gestion des comptes côté admin.
type UserAdminProvider interface {
	List(page, size int) ([]models.User, int64, error)
	SetRole(id uint, role string) (*models.User, error)
}

type UserHandler struct {
	users UserAdminProvider
}

func NewUserHandler(users UserAdminProvider) *UserHandler {
	return &UserHandler{users: users}
}

//
// 🔵 GET /users (admin)
//
func (h *UserHandler) List(c *gin.Context) {
	page := 1
	size := 20

	if v := c.Query("page"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p >= 1 {
			page = p
		}
	}
	if v := c.Query("page_size"); v != "" {
		if s, err := strconv.Atoi(v); err == nil && s >= 1 && s <= 100 {
			size = s
		}
	}

	users, total, err := h.users.List(page, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture utilisateurs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"items": users,
		"total": total,
		"page":  page,
		"size":  size,
		"pages": store.PageCount(total, size),
	})
}

//
// 🟠 PUT /users/:id/role (admin), valeur validée
// contre l'énumération {user, admin}.
//
func (h *UserHandler) UpdateRole(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "ID invalide"})
		return
	}

	var input struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || !models.ValidRole(input.Role) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Rôle invalide (valeurs acceptées : user, admin)"})
		return
	}

	user, err := h.users.SetRole(uint(userID), input.Role)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour rôle"})
		return
	}
	c.JSON(http.StatusOK, user)
}
