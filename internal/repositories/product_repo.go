package repositories

import (
	"reseller/internal/models"
)

// ProductRepository defines the interface for catalog data access.
// Products are seeded and edited in place; the catalog never deletes them.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	// Update loads the product, applies fn and stores the result atomically.
	// If fn returns an error nothing is stored and that error is returned.
	Update(id string, fn func(*models.Product) error) (*models.Product, error)
}
