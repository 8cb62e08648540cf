package utils

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"

	AccessTokenTTL  = 30 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
)

var ErrInvalidToken = errors.New("token invalide")

// TokenClaims : le sous-ensemble des claims que le reste du code consomme.
type TokenClaims struct {
	Email string
	JTI   string
}

func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "super_secret"
	}
	return []byte(secret)
}

// GenerateAccessToken émet un token d'accès courte durée, sub = email.
func GenerateAccessToken(email string) (string, error) {
	claims := jwt.MapClaims{
		"sub":  email,
		"type": TokenTypeAccess,
		"exp":  time.Now().Add(AccessTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// GenerateRefreshToken émet un refresh token longue durée et retourne aussi
// son jti, à enregistrer côté Redis pour pouvoir le révoquer.
func GenerateRefreshToken(email string) (string, string, error) {
	jti := uuid.NewString()
	claims := jwt.MapClaims{
		"sub":  email,
		"type": TokenTypeRefresh,
		"jti":  jti,
		"exp":  time.Now().Add(RefreshTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(jwtSecret())
	if err != nil {
		return "", "", err
	}
	return signed, jti, nil
}

// ParseToken vérifie signature, expiration et type attendu.
func ParseToken(tokenString, expectedType string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("méthode de signature inattendue: %v", t.Header["alg"])
		}
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	if typ, _ := claims["type"].(string); typ != expectedType {
		return nil, ErrInvalidToken
	}

	email, _ := claims["sub"].(string)
	if email == "" {
		return nil, ErrInvalidToken
	}

	jti, _ := claims["jti"].(string)
	return &TokenClaims{Email: email, JTI: jti}, nil
}
