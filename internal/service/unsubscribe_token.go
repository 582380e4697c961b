package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const unsubscribePurpose = "newsletter_unsubscribe"

// UnsubscribeTokenManager issues and verifies the signed tokens embedded
// in newsletter unsubscribe links.
type UnsubscribeTokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewUnsubscribeTokenManager creates a token manager. ttl <= 0 falls back
// to 30 days.
func NewUnsubscribeTokenManager(secret string, ttl time.Duration) (*UnsubscribeTokenManager, error) {
	if secret == "" {
		return nil, fmt.Errorf("unsubscribe token secret is required")
	}
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &UnsubscribeTokenManager{secret: []byte(secret), ttl: ttl}, nil
}

type unsubscribeClaims struct {
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// Issue creates an HS256 token bound to the subscriber email.
func (m *UnsubscribeTokenManager) Issue(email string) (string, error) {
	now := time.Now()
	claims := unsubscribeClaims{
		Purpose: unsubscribePurpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Verify parses the token and returns the email it was issued for.
func (m *UnsubscribeTokenManager) Verify(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &unsubscribeClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("invalid unsubscribe token: %w", err)
	}

	claims, ok := token.Claims.(*unsubscribeClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid unsubscribe token claims")
	}
	if claims.Purpose != unsubscribePurpose {
		return "", fmt.Errorf("token purpose mismatch")
	}
	return claims.Subject, nil
}
