package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims represents the JWT claims for a wishlist session token.
// A session is anonymous: it identifies a device/browser profile, not a user
// account. Binding sessions to accounts is the concern of the storefront's
// auth subsystem, which this service only sees as an opaque bearer token.
type Claims struct {
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

// SessionManager handles session token generation and validation.
type SessionManager struct {
	secret []byte
	expiry time.Duration
}

// NewSessionManager creates a new session manager with the given secret and expiry.
func NewSessionManager(secret string, expiry time.Duration) *SessionManager {
	return &SessionManager{
		secret: []byte(secret),
		expiry: expiry,
	}
}

// Generate creates a signed session token for the given session ID.
func (m *SessionManager) Generate(sessionID string) (string, error) {
	now := time.Now().UTC()
	claims := &Claims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
			Issuer:    "wishlist-service",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}

	return signedToken, nil
}

// Validate parses and validates a session token, returning the claims.
func (m *SessionManager) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse session token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid session token claims")
	}

	return claims, nil
}
