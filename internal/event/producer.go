package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mFatihGorhan/lux-fashion-website-sub001/internal/domain"
	"github.com/mFatihGorhan/lux-fashion-website-sub001/internal/kafka"
)

// Kafka topic constants for wishlist domain events.
const (
	TopicItemAdded   = "storefront.wishlist.item_added"
	TopicItemRemoved = "storefront.wishlist.item_removed"
	TopicCleared     = "storefront.wishlist.cleared"
)

// Aggregate type constant.
const AggregateTypeWishlist = "wishlist"

// Source identifier for events originating from the wishlist service.
const SourceWishlistService = "wishlist-service"

// ItemAddedData is the payload for a wishlist.item_added event.
type ItemAddedData struct {
	SessionID string  `json:"session_id"`
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Category  string  `json:"category,omitempty"`
	Price     float64 `json:"price"`
}

// ItemRemovedData is the payload for a wishlist.item_removed event.
type ItemRemovedData struct {
	SessionID string `json:"session_id"`
	ProductID string `json:"product_id"`
}

// ClearedData is the payload for a wishlist.cleared event.
type ClearedData struct {
	SessionID    string `json:"session_id"`
	ItemsRemoved int    `json:"items_removed"`
}

// Producer publishes wishlist domain events to Kafka.
type Producer struct {
	kafka  *kafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the wishlist service.
func NewProducer(kafka *kafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishItemAdded publishes a wishlist.item_added event.
func (p *Producer) PublishItemAdded(ctx context.Context, item *domain.Item) error {
	data := ItemAddedData{
		SessionID: item.SessionID,
		ProductID: item.ProductID,
		Name:      item.Name,
		Category:  item.Category,
		Price:     item.Price,
	}

	event, err := kafka.NewEvent(TopicItemAdded, item.SessionID, AggregateTypeWishlist, SourceWishlistService, data)
	if err != nil {
		return fmt.Errorf("create wishlist.item_added event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicItemAdded, event); err != nil {
		return fmt.Errorf("publish wishlist.item_added event: %w", err)
	}

	p.logger.DebugContext(ctx, "published wishlist.item_added event",
		slog.String("session_id", item.SessionID),
		slog.String("product_id", item.ProductID),
	)

	return nil
}

// PublishItemRemoved publishes a wishlist.item_removed event.
func (p *Producer) PublishItemRemoved(ctx context.Context, sessionID, productID string) error {
	data := ItemRemovedData{
		SessionID: sessionID,
		ProductID: productID,
	}

	event, err := kafka.NewEvent(TopicItemRemoved, sessionID, AggregateTypeWishlist, SourceWishlistService, data)
	if err != nil {
		return fmt.Errorf("create wishlist.item_removed event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicItemRemoved, event); err != nil {
		return fmt.Errorf("publish wishlist.item_removed event: %w", err)
	}

	p.logger.DebugContext(ctx, "published wishlist.item_removed event",
		slog.String("session_id", sessionID),
		slog.String("product_id", productID),
	)

	return nil
}

// PublishCleared publishes a wishlist.cleared event.
func (p *Producer) PublishCleared(ctx context.Context, sessionID string, itemsRemoved int) error {
	data := ClearedData{
		SessionID:    sessionID,
		ItemsRemoved: itemsRemoved,
	}

	event, err := kafka.NewEvent(TopicCleared, sessionID, AggregateTypeWishlist, SourceWishlistService, data)
	if err != nil {
		return fmt.Errorf("create wishlist.cleared event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCleared, event); err != nil {
		return fmt.Errorf("publish wishlist.cleared event: %w", err)
	}

	p.logger.DebugContext(ctx, "published wishlist.cleared event",
		slog.String("session_id", sessionID),
		slog.Int("items_removed", itemsRemoved),
	)

	return nil
}
