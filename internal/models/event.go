package models

import "time"

// Catalog event types published after a successful write.
const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
	EventProductsPurged = "products.purged"
)

// ProductEvent describes a committed change to the catalog.
type ProductEvent struct {
	Type       string        `json:"type"`
	ProductID  string        `json:"product_id,omitempty"`
	OccurredAt time.Time     `json:"occurred_at"`
	Product    *PlainProduct `json:"product,omitempty"`
}
