package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	e := NotFound("product", "p1")
	assert.Contains(t, e.Error(), "NOT_FOUND")
	assert.Contains(t, e.Error(), "product with id p1 not found")

	wrapped := Internal(errors.New("disk on fire"))
	assert.Contains(t, wrapped.Error(), "disk on fire")
}

func TestAppError_Unwrap(t *testing.T) {
	e := NotFound("wishlist item", "p1")
	assert.True(t, errors.Is(e, ErrNotFound))

	inner := errors.New("boom")
	assert.True(t, errors.Is(Internal(inner), inner))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"app error", NotFound("product", "p1"), http.StatusNotFound},
		{"sentinel not found", fmt.Errorf("lookup: %w", ErrNotFound), http.StatusNotFound},
		{"sentinel invalid input", fmt.Errorf("parse: %w", ErrInvalidInput), http.StatusBadRequest},
		{"sentinel unauthorized", ErrUnauthorized, http.StatusUnauthorized},
		{"sentinel forbidden", ErrForbidden, http.StatusForbidden},
		{"sentinel conflict", ErrConflict, http.StatusConflict},
		{"sentinel unavailable", ErrServiceUnavail, http.StatusServiceUnavailable},
		{"unknown", errors.New("mystery"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestWrap(t *testing.T) {
	inner := errors.New("no rows")
	err := Wrap(inner, "load wishlist")
	assert.EqualError(t, err, "load wishlist: no rows")
	assert.True(t, errors.Is(err, inner))
}
