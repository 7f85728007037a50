package jwtutil

import (
	"github.com/vicriadty/cafe-app-ai/pkg/config"

	"github.com/golang-jwt/jwt/v5"
)

var signingKey = []byte("cafeappsecretkey")

// Initialize sets the signing key from configuration. Tokens themselves are
// issued by the external auth service; this service only validates them.
func Initialize(cfg *config.JWTConfig) {
	if cfg.SigningKey != "" {
		signingKey = []byte(cfg.SigningKey)
	}
}

// UserClaims represents the JWT claims for an authenticated user
type UserClaims struct {
	UserID uint   `json:"user_id"`
	Name   string `json:"name,omitempty"`
	Email  string `json:"email"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// ValidateToken validates and parses the JWT token
func ValidateToken(tokenString string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		return signingKey, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*UserClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrSignatureInvalid
}

// GenerateToken signs a token for the given claims. Used by tests and local
// tooling; production tokens come from the auth service with the same key.
func GenerateToken(claims *UserClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(signingKey)
}
