package postgres

import (
	"context"
	"fmt"

	"github.com/mFatihGorhan/lux-fashion-website-sub001/internal/domain"
)

// WishlistRepository implements repository.WishlistRepository using PostgreSQL.
type WishlistRepository struct {
	db DBTX
}

// NewWishlistRepository creates a new PostgreSQL-backed wishlist repository.
func NewWishlistRepository(db DBTX) *WishlistRepository {
	return &WishlistRepository{db: db}
}

// Add inserts an item into the session's wishlist.
// Uses ON CONFLICT DO NOTHING for idempotent behavior: a double add keeps the
// original row and its added_at.
func (r *WishlistRepository) Add(ctx context.Context, item *domain.Item) error {
	query := `
		INSERT INTO wishlist_items (session_id, product_id, name, slug, price, image, category, added_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (session_id, product_id) DO NOTHING`

	_, err := r.db.Exec(ctx, query,
		item.SessionID,
		item.ProductID,
		item.Name,
		item.Slug,
		item.Price,
		item.Image,
		item.Category,
		item.AddedAt,
	)
	if err != nil {
		return fmt.Errorf("add to wishlist: %w", err)
	}

	return nil
}

// Remove deletes a product from the session's wishlist. Removing an absent
// product is not an error; "remove" means "ensure not favorited".
func (r *WishlistRepository) Remove(ctx context.Context, sessionID, productID string) (bool, error) {
	query := `DELETE FROM wishlist_items WHERE session_id = $1 AND product_id = $2`

	ct, err := r.db.Exec(ctx, query, sessionID, productID)
	if err != nil {
		return false, fmt.Errorf("remove from wishlist: %w", err)
	}

	return ct.RowsAffected() > 0, nil
}

// List returns the session's wishlist in insertion order.
func (r *WishlistRepository) List(ctx context.Context, sessionID string) ([]*domain.Item, error) {
	query := `
		SELECT session_id, product_id, name, slug, price, image, category, added_at
		FROM wishlist_items
		WHERE session_id = $1
		ORDER BY position ASC`

	rows, err := r.db.Query(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list wishlist items: %w", err)
	}
	defer rows.Close()

	var items []*domain.Item
	for rows.Next() {
		var item domain.Item
		if err := rows.Scan(
			&item.SessionID,
			&item.ProductID,
			&item.Name,
			&item.Slug,
			&item.Price,
			&item.Image,
			&item.Category,
			&item.AddedAt,
		); err != nil {
			return nil, fmt.Errorf("scan wishlist item: %w", err)
		}
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate wishlist rows: %w", err)
	}

	if items == nil {
		items = []*domain.Item{}
	}

	return items, nil
}

// Clear deletes the session's entire wishlist and returns the number of rows removed.
func (r *WishlistRepository) Clear(ctx context.Context, sessionID string) (int, error) {
	query := `DELETE FROM wishlist_items WHERE session_id = $1`

	ct, err := r.db.Exec(ctx, query, sessionID)
	if err != nil {
		return 0, fmt.Errorf("clear wishlist: %w", err)
	}

	return int(ct.RowsAffected()), nil
}
