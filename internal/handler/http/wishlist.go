package http

import (
	"log/slog"
	"net/http"

	"github.com/mFatihGorhan/lux-fashion-website-sub001/internal/domain"
	apperrors "github.com/mFatihGorhan/lux-fashion-website-sub001/internal/errors"
	"github.com/mFatihGorhan/lux-fashion-website-sub001/internal/httputil"
	"github.com/mFatihGorhan/lux-fashion-website-sub001/internal/middleware"
	"github.com/mFatihGorhan/lux-fashion-website-sub001/internal/service"
	"github.com/mFatihGorhan/lux-fashion-website-sub001/internal/validator"
)

// WishlistHandler handles HTTP requests for wishlist endpoints.
type WishlistHandler struct {
	service *service.WishlistService
	logger  *slog.Logger
}

// NewWishlistHandler creates a new wishlist HTTP handler.
func NewWishlistHandler(svc *service.WishlistService, logger *slog.Logger) *WishlistHandler {
	return &WishlistHandler{
		service: svc,
		logger:  logger,
	}
}

// --- Request / Response DTOs ---

// MutationRequest is the JSON request body for adding or removing an item.
type MutationRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Action    string `json:"action" validate:"required,oneof=add remove"`
}

// ListResponse is the JSON response body for fetching the wishlist.
type ListResponse struct {
	Items []*domain.Item `json:"items"`
}

// MutationResponse is the JSON response body for a successful mutation.
type MutationResponse struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

// ClearResponse is the JSON response body for clearing the wishlist.
type ClearResponse struct {
	Message      string `json:"message"`
	Success      bool   `json:"success"`
	DeletedCount int    `json:"deletedCount"`
}

// --- Handlers ---

// List handles GET /api/v1/wishlist
func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.SessionIDFromContext(r.Context())

	items, err := h.service.List(r.Context(), sessionID)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, ListResponse{Items: items})
}

// Mutate handles POST /api/v1/wishlist
func (h *WishlistHandler) Mutate(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.SessionIDFromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1 MB limit
	var req MutationRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	action, err := domain.ParseAction(req.Action)
	if err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput(err.Error()))
		return
	}

	result, err := h.service.Apply(r.Context(), sessionID, req.ProductID, action)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, MutationResponse{
		Message: result.Message,
		Success: true,
	})
}

// Clear handles DELETE /api/v1/wishlist
func (h *WishlistHandler) Clear(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.SessionIDFromContext(r.Context())

	count, err := h.service.Clear(r.Context(), sessionID)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, ClearResponse{
		Message:      "wishlist cleared",
		Success:      true,
		DeletedCount: count,
	})
}
