package repository

import (
	"context"

	"github.com/mFatihGorhan/lux-fashion-website-sub001/internal/domain"
)

// WishlistRepository defines the persistence operations for session wishlists.
type WishlistRepository interface {
	// Add inserts an item into the session's wishlist. Adding a product that
	// is already present is a no-op (idempotent insert); the original row,
	// including its added_at, is preserved.
	Add(ctx context.Context, item *domain.Item) error

	// Remove deletes a product from the session's wishlist. Removing an
	// absent product is not an error; the boolean reports whether a row was
	// actually deleted.
	Remove(ctx context.Context, sessionID, productID string) (bool, error)

	// List returns the session's wishlist in insertion order.
	List(ctx context.Context, sessionID string) ([]*domain.Item, error)

	// Clear deletes the session's entire wishlist and returns the number of
	// rows removed.
	Clear(ctx context.Context, sessionID string) (int, error)
}

// ProductRepository reads the local catalog replica.
type ProductRepository interface {
	// GetByID returns the product with the given ID, or ErrNotFound.
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}
