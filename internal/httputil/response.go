// Package httputil writes wire responses: raw JSON bodies for success and
// the standard `{"error": {...}}` envelope for failures.
package httputil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	apperrors "github.com/mFatihGorhan/lux-fashion-website-sub001/internal/errors"
	"github.com/mFatihGorhan/lux-fashion-website-sub001/internal/logger"
	"github.com/mFatihGorhan/lux-fashion-website-sub001/internal/validator"
)

// ErrorResponse is the body of the error envelope.
type ErrorResponse struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

type errorEnvelope struct {
	Error *ErrorResponse `json:"error"`
}

// WriteJSON writes v with the given status. An encoding failure after the
// header is sent cannot be reported to the client.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// codeFor translates a non-AppError into a wire code and client-safe
// message. Anything unrecognized is an opaque 500.
func codeFor(err error) (code, message string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return "NOT_FOUND", "resource not found"
	case errors.Is(err, apperrors.ErrInvalidInput):
		return "INVALID_INPUT", err.Error()
	case errors.Is(err, apperrors.ErrUnauthorized):
		return "UNAUTHORIZED", "unauthorized"
	default:
		return "INTERNAL_ERROR", "an internal error occurred"
	}
}

// WriteError maps err onto the error envelope. AppError carries its own
// code, message and status; sentinel chains are translated; everything else
// is a 500, logged with the request-scoped logger so the correlation ID
// rides along.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := logger.CorrelationIDFromContext(r.Context())

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Status == http.StatusInternalServerError {
			logInternal(r, err)
		}
		WriteJSON(w, appErr.Status, errorEnvelope{
			Error: &ErrorResponse{Code: appErr.Code, Message: appErr.Message, RequestID: requestID},
		})
		return
	}

	status := apperrors.HTTPStatus(err)
	code, message := codeFor(err)
	if status == http.StatusInternalServerError {
		logInternal(r, err)
	}

	WriteJSON(w, status, errorEnvelope{
		Error: &ErrorResponse{Code: code, Message: message, RequestID: requestID},
	})
}

func logInternal(r *http.Request, err error) {
	logger.FromContext(r.Context()).ErrorContext(r.Context(), "internal error",
		slog.String("error", err.Error()),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	)
}

// WriteValidationError reports field-level failures from the request
// validator; any other decode error becomes a generic INVALID_INPUT.
func WriteValidationError(w http.ResponseWriter, err error) {
	var valErr *validator.ValidationError
	if errors.As(err, &valErr) {
		WriteJSON(w, http.StatusBadRequest, errorEnvelope{
			Error: &ErrorResponse{
				Code:    "VALIDATION_ERROR",
				Message: "request validation failed",
				Fields:  valErr.Fields(),
			},
		})
		return
	}

	WriteJSON(w, http.StatusBadRequest, errorEnvelope{
		Error: &ErrorResponse{Code: "INVALID_INPUT", Message: err.Error()},
	})
}
