package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"lumea_back_end/internal/database"

	"github.com/gin-gonic/gin"
)

const (
	// Limites par endpoint
	RegisterMaxAttempts = 5
	LoginMaxAttempts    = 5
	CatalogMaxWrites    = 20

	AuthWindow    = 1 * time.Minute
	CatalogWindow = 1 * time.Minute
)

// RateLimit limite le nombre de requêtes par adresse IP pour un groupe
// d'endpoints. Compteur Redis INCR + EXPIRE, 429 avec retry_after quand la
// limite est atteinte. Sans Redis configuré, le middleware laisse passer.
func RateLimit(name string, max int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if database.Redis == nil {
			c.Next()
			return
		}

		ctx := context.Background()
		key := fmt.Sprintf("ratelimit:%s:%s", name, clientIP(c))

		requests, _ := database.Redis.Get(ctx, key).Int()
		if requests >= max {
			ttl := database.Redis.TTL(ctx, key).Val()
			retryAfter := int(ttl.Seconds())
			if retryAfter <= 0 {
				retryAfter = int(window.Seconds())
			}
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Trop de requêtes. Réessayez plus tard",
				"retry_after": retryAfter,
			})
			c.Abort()
			return
		}

		// Incrémenter le compteur
		pipe := database.Redis.Pipeline()
		pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, window)
		pipe.Exec(ctx)

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", max))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", max-requests-1))

		c.Next()
	}
}

// clientIP privilégie X-Forwarded-For derrière un reverse proxy.
func clientIP(c *gin.Context) string {
	if fwd := c.GetHeader("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	return c.ClientIP()
}
