package user

import (
	"context"
	"net/http"

	"lumea_back_end/internal/cache"
	"lumea_back_end/internal/models"
	"lumea_back_end/internal/utils"

	"github.com/gin-gonic/gin"
)

// UserAccountProvider : accès aux comptes pour l'authentification locale.
type UserAccountProvider interface {
	GetByEmail(email string) (*models.User, error)
	Create(email, passwordHash string, fullName *string) (*models.User, error)
}

type AuthHandler struct {
	users UserAccountProvider
}

func NewAuthHandler(users UserAccountProvider) *AuthHandler {
	return &AuthHandler{users: users}
}

// ================== AUTH LOCALE ==================

func (h *AuthHandler) Register(c *gin.Context) {
	var input struct {
		Email    string  `json:"email" binding:"required,email"`
		Password string  `json:"password" binding:"required"`
		FullName *string `json:"full_name"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}
	if err := utils.ValidatePassword(input.Password); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	// email déjà pris ?
	if existing, _ := h.users.GetByEmail(input.Email); existing != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Un compte avec cet email existe déjà"})
		return
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création utilisateur"})
		return
	}

	user, err := h.users.Create(input.Email, hash, input.FullName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création utilisateur"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Utilisateur créé",
		"user_id": user.ID,
		"email":   user.Email,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Données invalides"})
		return
	}

	user, err := h.users.GetByEmail(input.Email)
	if err != nil || user == nil || !utils.CheckPassword(user.Password, input.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}

	accessToken, err := utils.GenerateAccessToken(user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}
	refreshToken, jti, err := utils.GenerateRefreshToken(user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}
	if err := cache.StoreRefreshToken(context.Background(), jti, user.Email, utils.RefreshTokenTTL); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création session"})
		return
	}

	// Cookie de session pour le front, le header Bearer reste prioritaire
	c.SetCookie("access_token", "Bearer "+accessToken, int(utils.AccessTokenTTL.Seconds()), "/", "", false, true)

	c.JSON(http.StatusOK, gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"token_type":    "bearer",
		"user_id":       user.ID,
		"email":         user.Email,
		"role":          user.Role,
	})
}

// Refresh échange un refresh token valide (header X-Refresh-Token) contre un
// nouveau token d'accès.
func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken := c.GetHeader("X-Refresh-Token")
	if refreshToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token manquant"})
		return
	}

	claims, err := utils.ParseToken(refreshToken, utils.TokenTypeRefresh)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token invalide ou expiré"})
		return
	}
	if !cache.RefreshTokenValid(context.Background(), claims.JTI) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session révoquée"})
		return
	}

	accessToken, err := utils.GenerateAccessToken(claims.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": accessToken,
		"token_type":   "bearer",
	})
}

// Logout révoque le refresh token présenté et efface le cookie de session.
func (h *AuthHandler) Logout(c *gin.Context) {
	if refreshToken := c.GetHeader("X-Refresh-Token"); refreshToken != "" {
		if claims, err := utils.ParseToken(refreshToken, utils.TokenTypeRefresh); err == nil && claims.JTI != "" {
			cache.RevokeRefreshToken(context.Background(), claims.JTI)
		}
	}

	c.SetCookie("access_token", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Déconnecté"})
}

// Me retourne l'utilisateur courant (sans le hash de mot de passe).
func (h *AuthHandler) Me(c *gin.Context) {
	email := c.GetString("email")

	user, err := h.users.GetByEmail(email)
	if err != nil || user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur introuvable"})
		return
	}

	c.JSON(http.StatusOK, user)
}
