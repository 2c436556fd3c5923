package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mFatihGorhan/lux-fashion-website-sub001/internal/domain"
	apperrors "github.com/mFatihGorhan/lux-fashion-website-sub001/internal/errors"
)

// ProductRepository implements repository.ProductRepository against the local
// catalog replica table.
type ProductRepository struct {
	db DBTX
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(db DBTX) *ProductRepository {
	return &ProductRepository{db: db}
}

// GetByID returns the product with the given ID.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	query := `
		SELECT id, name, slug, price, image, category
		FROM products
		WHERE id = $1`

	var p domain.Product
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.Name,
		&p.Slug,
		&p.Price,
		&p.Image,
		&p.Category,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("product", id)
		}
		return nil, fmt.Errorf("get product by id: %w", err)
	}

	return &p, nil
}
