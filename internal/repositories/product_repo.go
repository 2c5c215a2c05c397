package repositories

import (
	"context"
	"errors"

	"teslo/internal/lookup"
	"teslo/internal/models"
)

// ErrNotFound is returned (wrapped) when no row matches a lookup.
var ErrNotFound = errors.New("record not found")

// ProductRepository is the store adapter for the Product aggregate.
type ProductRepository interface {
	TxBeginner

	// Create inserts the product and its images as one atomic write.
	Create(ctx context.Context, product *models.Product) error
	// FindPage returns a page of products with their images.
	FindPage(ctx context.Context, limit, offset int) ([]models.Product, error)
	// FindByTerm resolves a classified term to one product with its images.
	FindByTerm(ctx context.Context, term lookup.Term) (*models.Product, error)
	// Preload loads the stored row for id without its images.
	Preload(ctx context.Context, id string) (*models.Product, error)
	// Remove deletes the product; its images go with it.
	Remove(ctx context.Context, product *models.Product) error
	// DeleteAll deletes every product and returns how many rows went.
	DeleteAll(ctx context.Context) (int64, error)
}

// TxBeginner opens a transaction on a dedicated store session.
type TxBeginner interface {
	Begin(ctx context.Context) (ProductTx, error)
}

// ProductTx is an open unit of work. Exactly one of Commit or Rollback
// ends it, and Release must then be called once to return the session.
type ProductTx interface {
	DeleteImages(productID string) error
	Save(product *models.Product) error
	Commit() error
	Rollback() error
	Release() error
}
