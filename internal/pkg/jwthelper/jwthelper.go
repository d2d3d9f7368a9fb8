package jwthelper

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	jwt.RegisteredClaims
	UserID    uint   `json:"user_id"`
	UserAgent string `json:"user_agent"`
}

// GenerateToken signs a 24h token bound to the caller's user agent.
func GenerateToken(signingKey []byte, userID uint, userAgent string) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
		UserID:    userID,
		UserAgent: userAgent,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)

	signed, err := token.SignedString(signingKey)
	if err != nil {
		return "", err
	}

	return signed, nil
}

// ParseToken validates the signature and returns the embedded claims.
func ParseToken(signingKey []byte, tokenString string) (*Claims, error) {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return signingKey, nil
	})
	if err != nil {
		return nil, err
	}

	return claims, nil
}
