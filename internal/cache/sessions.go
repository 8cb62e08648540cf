package cache

import (
	"context"
	"time"

	"lumea_back_end/internal/database"
)

const refreshPrefix = "refresh:"

// StoreRefreshToken enregistre le jti d'un refresh token pour la durée de vie
// du token. Un jti absent de Redis est considéré comme révoqué.
func StoreRefreshToken(ctx context.Context, jti, email string, ttl time.Duration) error {
	if database.Redis == nil {
		return nil
	}
	return database.Redis.Set(ctx, refreshPrefix+jti, email, ttl).Err()
}

// RefreshTokenValid vérifie que le jti n'a pas été révoqué.
// Sans Redis configuré, la signature et l'expiration du JWT font seules foi.
func RefreshTokenValid(ctx context.Context, jti string) bool {
	if database.Redis == nil {
		return true
	}
	return database.Redis.Exists(ctx, refreshPrefix+jti).Val() > 0
}

// RevokeRefreshToken supprime le jti, utilisé par le logout.
func RevokeRefreshToken(ctx context.Context, jti string) {
	if database.Redis == nil {
		return
	}
	database.Redis.Del(ctx, refreshPrefix+jti)
}
