package services

import (
	"fmt"
	"log"

	"katalog/internal/models"
	"katalog/internal/repositories"
)

// Product event names published after successful mutations.
const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
)

// EventPublisher delivers product change notifications to an external broker.
type EventPublisher interface {
	PublishProductEvent(event string, product models.Product) error
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher EventPublisher
}

// NewProductService creates a new ProductService. publisher may be nil, in
// which case no events are published.
func NewProductService(repo repositories.ProductRepository, publisher EventPublisher) *ProductService {
	return &ProductService{
		repo:      repo,
		publisher: publisher,
	}
}

// ListProducts returns one page of products matching the query.
func (s *ProductService) ListProducts(q ProductQuery) (*models.ProductPage, error) {
	products, err := s.repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	page := ApplyQuery(products, q)
	return &page, nil
}

// GetProductStats aggregates the current catalog.
func (s *ProductService) GetProductStats() (*models.ProductStats, error) {
	products, err := s.repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to compute product stats: %w", err)
	}
	stats := ComputeStats(products)
	return &stats, nil
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct stores a new product under a freshly generated ID.
func (s *ProductService) CreateProduct(input models.ProductInput) (*models.Product, error) {
	product := &models.Product{}
	input.Apply(product)

	if err := s.repo.Create(product); err != nil {
		return nil, err
	}
	s.publish(EventProductCreated, *product)
	return product, nil
}

// UpdateProduct overwrites every field of an existing product except its ID.
func (s *ProductService) UpdateProduct(id string, input models.ProductInput) (*models.Product, error) {
	product := &models.Product{ID: id}
	input.Apply(product)

	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	s.publish(EventProductUpdated, *product)
	return product, nil
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(id string) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.publish(EventProductDeleted, models.Product{ID: id})
	return nil
}

// publish is best effort: the mutation has already been applied, so a broker
// failure is only logged.
func (s *ProductService) publish(event string, product models.Product) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishProductEvent(event, product); err != nil {
		log.Printf("Warning: Failed to publish %s event for product %s: %v", event, product.ID, err)
	}
}
