package authUtils

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// RelayTokenSubject identifies tokens minted for the mail relay.
const RelayTokenSubject = "mail-relay"

var ErrMissingSecret = errors.New("relay secret is not configured")

// GenerateRelayToken signs a short-lived HS256 token the mail relay accepts.
func GenerateRelayToken(secret string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", ErrMissingSecret
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
		Subject:   RelayTokenSubject,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(ttl).Unix(),
	})

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign relay token: %w", err)
	}

	return tokenString, nil
}

// ParseRelayToken verifies a relay token and its subject.
func ParseRelayToken(secret, tokenString string) error {
	if secret == "" {
		return ErrMissingSecret
	}

	claims := &jwt.StandardClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return err
	}
	if !token.Valid {
		return errors.New("invalid token")
	}
	if claims.Subject != RelayTokenSubject {
		return fmt.Errorf("unexpected token subject %q", claims.Subject)
	}

	return nil
}
