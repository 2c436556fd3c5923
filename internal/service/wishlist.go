package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mFatihGorhan/lux-fashion-website-sub001/internal/domain"
	apperrors "github.com/mFatihGorhan/lux-fashion-website-sub001/internal/errors"
	"github.com/mFatihGorhan/lux-fashion-website-sub001/internal/event"
	"github.com/mFatihGorhan/lux-fashion-website-sub001/internal/repository"
	redisrepo "github.com/mFatihGorhan/lux-fashion-website-sub001/internal/repository/redis"
)

// Cache is the read-cache interface for wishlists. A nil Cache disables
// caching; all cache failures are logged and never surface to the caller.
type Cache interface {
	Get(ctx context.Context, sessionID string) ([]*domain.Item, error)
	Set(ctx context.Context, sessionID string, items []*domain.Item) error
	Invalidate(ctx context.Context, sessionID string) error
}

// WishlistService implements the business logic for wishlist operations.
type WishlistService struct {
	wishlists repository.WishlistRepository
	products  repository.ProductRepository
	cache     Cache
	producer  *event.Producer
	logger    *slog.Logger
}

// NewWishlistService creates a new wishlist service. cache may be nil.
func NewWishlistService(wishlists repository.WishlistRepository, products repository.ProductRepository, cache Cache, producer *event.Producer, logger *slog.Logger) *WishlistService {
	return &WishlistService{
		wishlists: wishlists,
		products:  products,
		cache:     cache,
		producer:  producer,
		logger:    logger,
	}
}

// MutationResult describes the outcome of an add or remove operation.
type MutationResult struct {
	Message string
	Action  domain.Action
}

// Apply executes a single add or remove mutation against the session's
// wishlist. Both directions are idempotent: adding a product that is already
// favorited keeps the original entry, and removing one that is absent
// succeeds without touching anything.
func (s *WishlistService) Apply(ctx context.Context, sessionID, productID string, action domain.Action) (*MutationResult, error) {
	if sessionID == "" {
		return nil, apperrors.Unauthorized("missing session")
	}
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}

	switch action {
	case domain.ActionAdd:
		return s.add(ctx, sessionID, productID)
	case domain.ActionRemove:
		return s.remove(ctx, sessionID, productID)
	default:
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid action %q, must be add or remove", action))
	}
}

func (s *WishlistService) add(ctx context.Context, sessionID, productID string) (*MutationResult, error) {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	item := product.Snapshot(sessionID, time.Now().UTC())
	if err := s.wishlists.Add(ctx, item); err != nil {
		return nil, apperrors.Internal(err)
	}

	s.invalidateCache(ctx, sessionID)

	if err := s.producer.PublishItemAdded(ctx, item); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish wishlist.item_added event",
			slog.String("session_id", sessionID),
			slog.String("product_id", productID),
			slog.String("error", err.Error()),
		)
		// Do not fail the operation if event publishing fails.
	}

	s.logger.InfoContext(ctx, "wishlist item added",
		slog.String("session_id", sessionID),
		slog.String("product_id", productID),
	)

	return &MutationResult{Message: "item added to wishlist", Action: domain.ActionAdd}, nil
}

func (s *WishlistService) remove(ctx context.Context, sessionID, productID string) (*MutationResult, error) {
	removed, err := s.wishlists.Remove(ctx, sessionID, productID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	if removed {
		s.invalidateCache(ctx, sessionID)
		if err := s.producer.PublishItemRemoved(ctx, sessionID, productID); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish wishlist.item_removed event",
				slog.String("session_id", sessionID),
				slog.String("product_id", productID),
				slog.String("error", err.Error()),
			)
		}
	}

	s.logger.InfoContext(ctx, "wishlist item removed",
		slog.String("session_id", sessionID),
		slog.String("product_id", productID),
		slog.Bool("was_present", removed),
	)

	return &MutationResult{Message: "item removed from wishlist", Action: domain.ActionRemove}, nil
}

// List returns the session's wishlist in insertion order. An empty wishlist
// yields an empty slice, never nil.
func (s *WishlistService) List(ctx context.Context, sessionID string) ([]*domain.Item, error) {
	if sessionID == "" {
		return nil, apperrors.Unauthorized("missing session")
	}

	if s.cache != nil {
		if items, err := s.cache.Get(ctx, sessionID); err == nil {
			return items, nil
		} else if !errors.Is(err, redisrepo.ErrCacheMiss) {
			s.logger.WarnContext(ctx, "wishlist cache read failed",
				slog.String("session_id", sessionID),
				slog.String("error", err.Error()),
			)
		}
	}

	items, err := s.wishlists.List(ctx, sessionID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, sessionID, items); err != nil {
			s.logger.WarnContext(ctx, "wishlist cache write failed",
				slog.String("session_id", sessionID),
				slog.String("error", err.Error()),
			)
		}
	}

	return items, nil
}

// Clear removes every item from the session's wishlist and returns the number
// of items removed. Clearing an already-empty wishlist succeeds with a count
// of zero.
func (s *WishlistService) Clear(ctx context.Context, sessionID string) (int, error) {
	if sessionID == "" {
		return 0, apperrors.Unauthorized("missing session")
	}

	count, err := s.wishlists.Clear(ctx, sessionID)
	if err != nil {
		return 0, apperrors.Internal(err)
	}

	s.invalidateCache(ctx, sessionID)

	if count > 0 {
		if err := s.producer.PublishCleared(ctx, sessionID, count); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish wishlist.cleared event",
				slog.String("session_id", sessionID),
				slog.String("error", err.Error()),
			)
		}
	}

	s.logger.InfoContext(ctx, "wishlist cleared",
		slog.String("session_id", sessionID),
		slog.Int("items_removed", count),
	)

	return count, nil
}

func (s *WishlistService) invalidateCache(ctx context.Context, sessionID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, sessionID); err != nil {
		s.logger.WarnContext(ctx, "wishlist cache invalidation failed",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
	}
}
