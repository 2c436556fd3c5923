// Package client implements the storefront's session-local wishlist: an
// in-memory state container with durable local persistence and best-effort
// synchronization to the remote wishlist service. Local state is
// authoritative; the network is a convenience layer on top.
package client

import "time"

// Item is one favorited product. Product display fields are copied in at add
// time so the wishlist stays readable without a catalog lookup. JSON field
// names follow the storefront wire format.
type Item struct {
	ProductID string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Price     float64   `json:"price"`
	Image     string    `json:"image,omitempty"`
	Category  string    `json:"category,omitempty"`
	AddedAt   time.Time `json:"addedAt"`
}

// ItemInput carries the caller-supplied fields of an item. The store stamps
// AddedAt itself at insertion time.
type ItemInput struct {
	ProductID string
	Name      string
	Slug      string
	Price     float64
	Image     string
	Category  string
}

func (in ItemInput) item(addedAt time.Time) Item {
	return Item{
		ProductID: in.ProductID,
		Name:      in.Name,
		Slug:      in.Slug,
		Price:     in.Price,
		Image:     in.Image,
		Category:  in.Category,
		AddedAt:   addedAt,
	}
}
