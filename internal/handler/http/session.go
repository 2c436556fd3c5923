package http

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	apperrors "github.com/mFatihGorhan/lux-fashion-website-sub001/internal/errors"
	"github.com/mFatihGorhan/lux-fashion-website-sub001/internal/httputil"
)

// TokenIssuer issues a signed session token for the given session ID.
type TokenIssuer interface {
	Generate(sessionID string) (string, error)
}

// SessionHandler issues anonymous browsing sessions. The storefront calls this
// once per visitor and sends the returned token as a bearer credential on
// wishlist requests.
type SessionHandler struct {
	issuer TokenIssuer
	logger *slog.Logger
}

// NewSessionHandler creates a new session HTTP handler.
func NewSessionHandler(issuer TokenIssuer, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		issuer: issuer,
		logger: logger,
	}
}

// SessionResponse is the JSON response body for a newly issued session.
type SessionResponse struct {
	SessionID string `json:"sessionId"`
	Token     string `json:"token"`
}

// Create handles POST /api/v1/sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	sessionID := uuid.New().String()

	token, err := h.issuer.Generate(sessionID)
	if err != nil {
		httputil.WriteError(w, r, apperrors.Internal(err))
		return
	}

	h.logger.InfoContext(r.Context(), "session issued",
		slog.String("session_id", sessionID),
	)

	httputil.WriteJSON(w, http.StatusCreated, SessionResponse{
		SessionID: sessionID,
		Token:     token,
	})
}
