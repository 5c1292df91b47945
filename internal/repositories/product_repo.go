package repositories

import (
	"katalog/internal/models"
)

// ProductRepository defines the interface for product data access.
// Implementations return errors wrapping apperrors.ErrNotFound for unknown IDs,
// and GetAll always returns an independent copy in insertion order.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
}
