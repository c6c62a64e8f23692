package utils

import (
	"errors"
	"time"

	"github.com/admsdev98/NutriOrxata/config"

	"github.com/golang-jwt/jwt/v5"
)

const (
	AccessModeActive   = "active"
	AccessModeReadOnly = "read_only"
)

// TokenTTL bounds the access-mode staleness window: the write gate trusts
// the claim issued at login until the token expires.
const TokenTTL = 7 * 24 * time.Hour

type AccessClaims struct {
	TenantID   string `json:"tenant_id"`
	Role       string `json:"role"`
	AccessMode string `json:"access_mode"`
	jwt.RegisteredClaims
}

func GenerateJWT(sub, tenantID, role, accessMode string) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		TenantID:   tenantID,
		Role:       role,
		AccessMode: accessMode,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.App.JWTSecret))
}

func ParseJWT(tokenString string) (*AccessClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(config.App.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(*AccessClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}
	return claims, nil
}
