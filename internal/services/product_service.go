package services

import (
	"context"
	"errors"
	"time"

	"teslo/internal/apperr"
	"teslo/internal/logger"
	"teslo/internal/lookup"
	"teslo/internal/models"
	"teslo/internal/repositories"
)

// EventPublisher receives catalog events after a successful write.
type EventPublisher interface {
	PublishProductEvent(event models.ProductEvent) error
}

// ProductService handles business logic related to products and their images.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher EventPublisher
	log       *logger.Logger
	now       func() time.Time
}

// NewProductService creates a new ProductService. publisher may be nil,
// in which case no events are emitted.
func NewProductService(repo repositories.ProductRepository, publisher EventPublisher, log *logger.Logger) *ProductService {
	if log == nil {
		log = logger.Nop()
	}
	return &ProductService{
		repo:      repo,
		publisher: publisher,
		log:       log,
		now:       time.Now,
	}
}

// Create stores the product and its images in one write and returns it with
// the image URLs it was given.
func (s *ProductService) Create(ctx context.Context, input models.CreateProductInput) (models.PlainProduct, error) {
	product := input.ToProduct()
	if err := s.repo.Create(ctx, product); err != nil {
		return models.PlainProduct{}, s.handleDBError(err)
	}

	plain := models.ToPlainProductWithURLs(product, input.Images)
	s.publish(models.EventProductCreated, product.ID, &plain)
	return plain, nil
}

// FindAll returns one page of products with images flattened to URLs.
func (s *ProductService) FindAll(ctx context.Context, page models.Pagination) ([]models.PlainProduct, error) {
	limit, offset := page.Values()
	products, err := s.repo.FindPage(ctx, limit, offset)
	if err != nil {
		return nil, s.handleDBError(err)
	}

	plain := make([]models.PlainProduct, 0, len(products))
	for i := range products {
		plain = append(plain, models.ToPlainProduct(&products[i]))
	}
	return plain, nil
}

// FindOne resolves term by identifier or by title/slug and returns the
// aggregate with its image entities.
func (s *ProductService) FindOne(ctx context.Context, term string) (*models.Product, error) {
	product, err := s.repo.FindByTerm(ctx, lookup.Classify(term))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperr.NotFound("Product with %s not found", term)
		}
		return nil, s.handleDBError(err)
	}
	return product, nil
}

// FindOnePlain is FindOne in the caller-facing shape.
func (s *ProductService) FindOnePlain(ctx context.Context, term string) (models.PlainProduct, error) {
	product, err := s.FindOne(ctx, term)
	if err != nil {
		return models.PlainProduct{}, err
	}
	return models.ToPlainProduct(product), nil
}

// Update merges input onto the stored product and saves it in a
// transaction. A supplied image list replaces the current images inside
// that same transaction. The committed state is read back and returned.
func (s *ProductService) Update(ctx context.Context, id string, input models.UpdateProductInput) (models.PlainProduct, error) {
	key := lookup.Classify(id)
	if key.Kind != lookup.ByID {
		return models.PlainProduct{}, apperr.NotFound("Product with id: %s not found", id)
	}

	product, err := s.repo.Preload(ctx, key.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return models.PlainProduct{}, apperr.NotFound("Product with id: %s not found", id)
		}
		return models.PlainProduct{}, s.handleDBError(err)
	}
	input.ApplyTo(product)

	err = repositories.WithTx(ctx, s.repo, func(tx repositories.ProductTx) error {
		if input.Images != nil {
			if err := tx.DeleteImages(product.ID); err != nil {
				return err
			}
			product.Images = models.NewProductImages(input.Images)
		}
		return tx.Save(product)
	})
	if err != nil {
		return models.PlainProduct{}, s.handleDBError(err)
	}

	plain, err := s.FindOnePlain(ctx, product.ID)
	if err != nil {
		return models.PlainProduct{}, err
	}
	s.publish(models.EventProductUpdated, product.ID, &plain)
	return plain, nil
}

// Remove deletes the product found for id; its images go with it.
func (s *ProductService) Remove(ctx context.Context, id string) error {
	product, err := s.FindOne(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Remove(ctx, product); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperr.NotFound("Product with %s not found", id)
		}
		return s.handleDBError(err)
	}

	s.publish(models.EventProductDeleted, product.ID, nil)
	return nil
}

// DeleteAllProducts wipes the catalog and reports how many products went.
func (s *ProductService) DeleteAllProducts(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, s.handleDBError(err)
	}

	s.log.Warn("deleted all products", "count", n)
	s.publish(models.EventProductsPurged, "", nil)
	return n, nil
}

// handleDBError classifies a store error. Already classified errors pass
// through; uniqueness violations become input conflicts; anything else is
// logged and hidden behind the generic internal message.
func (s *ProductService) handleDBError(err error) error {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return err
	}
	if detail, ok := apperr.UniqueViolation(err); ok {
		return apperr.Conflict(detail, err)
	}

	s.log.Error("catalog store failure", "error", err)
	return apperr.Internal(err)
}

func (s *ProductService) publish(eventType, productID string, product *models.PlainProduct) {
	if s.publisher == nil {
		return
	}
	event := models.ProductEvent{
		Type:       eventType,
		ProductID:  productID,
		OccurredAt: s.now().UTC(),
		Product:    product,
	}
	if err := s.publisher.PublishProductEvent(event); err != nil {
		s.log.Warn("failed to publish catalog event", "type", eventType, "product_id", productID, "error", err)
	}
}
