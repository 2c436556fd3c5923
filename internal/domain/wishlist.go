package domain

import (
	"fmt"
	"time"
)

// Action is a wishlist mutation kind carried on the wire.
type Action string

const (
	ActionAdd    Action = "add"
	ActionRemove Action = "remove"
)

// ParseAction validates a raw action string.
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionAdd, ActionRemove:
		return Action(s), nil
	default:
		return "", fmt.Errorf("unknown wishlist action %q", s)
	}
}

// Item is one favorited product in a session's wishlist. Product fields are
// denormalized at add-time so the list stays readable without a live catalog
// lookup. JSON field names follow the storefront wire format (camelCase).
type Item struct {
	SessionID string    `json:"-"`
	ProductID string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Price     float64   `json:"price"`
	Image     string    `json:"image,omitempty"`
	Category  string    `json:"category,omitempty"`
	AddedAt   time.Time `json:"addedAt"`
}

// Product is a row of the local catalog replica used for add-time
// denormalization. The replica is maintained by the catalog pipeline; this
// service only reads it.
type Product struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Slug     string  `json:"slug"`
	Price    float64 `json:"price"`
	Image    string  `json:"image,omitempty"`
	Category string  `json:"category,omitempty"`
}

// Snapshot copies the product's display fields into a wishlist item for the
// given session, stamped with the given add time.
func (p *Product) Snapshot(sessionID string, addedAt time.Time) *Item {
	return &Item{
		SessionID: sessionID,
		ProductID: p.ID,
		Name:      p.Name,
		Slug:      p.Slug,
		Price:     p.Price,
		Image:     p.Image,
		Category:  p.Category,
		AddedAt:   addedAt,
	}
}
