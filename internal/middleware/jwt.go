package middleware

import (
	"net/http"
	"strings"

	"lumea_back_end/internal/models"
	"lumea_back_end/internal/utils"

	"github.com/gin-gonic/gin"
)

// UserProvider résout l'utilisateur courant à partir de l'email du token.
type UserProvider interface {
	GetByEmail(email string) (*models.User, error)
}

// AuthRequired extrait le token (header Authorization, sinon cookie
// access_token), le vérifie puis place l'identité dans le contexte Gin.
func AuthRequired(users UserProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token manquant"})
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(tokenString, utils.TokenTypeAccess)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token invalide ou expiré"})
			c.Abort()
			return
		}

		user, err := users.GetByEmail(claims.Email)
		if err != nil || user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur introuvable"})
			c.Abort()
			return
		}
		if !user.IsActive {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Compte désactivé"})
			c.Abort()
			return
		}

		c.Set("user_id", user.ID)
		c.Set("email", user.Email)
		c.Set("role", user.Role)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}

	// Fallback cookie, en retirant un éventuel préfixe "Bearer "
	cookie, err := c.Cookie("access_token")
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(cookie, "Bearer ")
}
