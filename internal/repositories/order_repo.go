package repositories

import (
	"reseller/internal/models"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	// GetAll returns orders newest OrderDate first, ties broken by ID.
	GetAll() ([]models.Order, error)
	GetByID(id string) (*models.Order, error)
	Create(order *models.Order) error
	// Update loads the order, applies fn and stores the result atomically.
	Update(id string, fn func(*models.Order) error) (*models.Order, error)
	// Orders are never deleted.
}
