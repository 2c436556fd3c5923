package middleware

import (
	"context"
	"net/http"
	"strings"

	apperrors "github.com/mFatihGorhan/lux-fashion-website-sub001/internal/errors"
	"github.com/mFatihGorhan/lux-fashion-website-sub001/internal/httputil"
)

type contextKeyType string

const sessionIDKey contextKeyType = "session_id"

// Claims carries what the wishlist endpoints need from a validated token:
// the anonymous session the wishlist belongs to.
type Claims struct {
	SessionID string `json:"session_id"`
}

// TokenValidator validates a bearer token and returns its claims. The app
// wires in the real session validation (see internal/auth); tests supply
// stubs.
type TokenValidator func(token string) (*Claims, error)

// Auth rejects requests without a valid bearer token and stores the session
// ID in the request context for the handlers.
func Auth(validate TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				httputil.WriteError(w, r, apperrors.Unauthorized("missing or malformed authorization header"))
				return
			}

			claims, err := validate(token)
			if err != nil {
				httputil.WriteError(w, r, apperrors.Unauthorized("invalid or expired token"))
				return
			}

			ctx := context.WithValue(r.Context(), sessionIDKey, claims.SessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// SessionIDFromContext returns the session ID stored by Auth, or "".
func SessionIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(sessionIDKey).(string); ok {
		return id
	}
	return ""
}
