package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const TTL = 24 * time.Hour

func Sign(userID uint, email string, secret []byte) (string, error) {
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"exp":   time.Now().Add(TTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret)
}

// Parse validates an HS256 token and returns the user id and email claims.
func Parse(raw string, secret []byte) (uint, string, error) {
	t, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return 0, "", fmt.Errorf("invalid token: %w", err)
	}
	if !t.Valid {
		return 0, "", fmt.Errorf("invalid token")
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", fmt.Errorf("cannot parse claims")
	}
	subRaw, ok := claims["sub"].(float64)
	if !ok {
		return 0, "", fmt.Errorf("invalid subject claim")
	}
	email, _ := claims["email"].(string)

	return uint(subRaw), email, nil
}
