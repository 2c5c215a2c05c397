package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"teslo/internal/lookup"
	"teslo/internal/models"

	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// imagesInOrder preloads images in the order they were attached.
func imagesInOrder(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// Create inserts the product; GORM inserts the images in the same transaction.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// FindPage retrieves a page of products with their images.
func (r *GORMProductRepository) FindPage(ctx context.Context, limit, offset int) ([]models.Product, error) {
	products := []models.Product{}
	if limit <= 0 {
		return products, nil
	}
	if err := r.db.WithContext(ctx).
		Preload("Images", imagesInOrder).
		Limit(limit).
		Offset(offset).
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// FindByTerm builds the query for a classified term and returns the first match.
func (r *GORMProductRepository) FindByTerm(ctx context.Context, term lookup.Term) (*models.Product, error) {
	query := r.db.WithContext(ctx).Preload("Images", imagesInOrder)
	switch term.Kind {
	case lookup.ByID:
		query = query.Where("id = ?", term.ID)
	case lookup.ByTitleOrSlug:
		query = query.Where("UPPER(title) = ? OR slug = ?", term.Title, term.Slug)
	default:
		return nil, fmt.Errorf("unsupported lookup kind %s", term.Kind)
	}

	var product models.Product
	if err := query.First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %q: %w", term.Raw, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find product %q: %w", term.Raw, err)
	}
	return &product, nil
}

// Preload loads the stored product row for id, leaving Images nil.
func (r *GORMProductRepository) Preload(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to preload product %s: %w", id, err)
	}
	return &product, nil
}

// Remove deletes the product row. The foreign key cascades to its images.
func (r *GORMProductRepository) Remove(ctx context.Context, product *models.Product) error {
	res := r.db.WithContext(ctx).Delete(product)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %s: %w", product.ID, ErrNotFound)
	}
	return nil
}

// DeleteAll removes every product row.
func (r *GORMProductRepository) DeleteAll(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.Product{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete all products: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// Begin acquires a dedicated connection from the pool and opens a
// transaction on it. The connection stays out of the pool until Release.
func (r *GORMProductRepository) Begin(ctx context.Context) (ProductTx, error) {
	sqlDB, err := r.db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}
	conn, err := sqlDB.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire connection: %w", err)
	}

	session := r.db.WithContext(ctx)
	session.Statement.ConnPool = conn
	tx := session.Begin()
	if tx.Error != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	return &gormProductTx{tx: tx, conn: conn}, nil
}

type gormProductTx struct {
	tx   *gorm.DB
	conn *sql.Conn
}

// DeleteImages removes every image row owned by productID.
func (t *gormProductTx) DeleteImages(productID string) error {
	if err := t.tx.Where("product_id = ?", productID).Delete(&models.ProductImage{}).Error; err != nil {
		return fmt.Errorf("failed to delete images of product %s: %w", productID, err)
	}
	return nil
}

// Save writes every product column and inserts any new images attached to it.
func (t *gormProductTx) Save(product *models.Product) error {
	if err := t.tx.Save(product).Error; err != nil {
		return fmt.Errorf("failed to save product %s: %w", product.ID, err)
	}
	return nil
}

func (t *gormProductTx) Commit() error {
	if err := t.tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (t *gormProductTx) Rollback() error {
	if err := t.tx.Rollback().Error; err != nil {
		return fmt.Errorf("failed to roll back transaction: %w", err)
	}
	return nil
}

// Release returns the dedicated connection to the pool.
func (t *gormProductTx) Release() error {
	return t.conn.Close()
}
