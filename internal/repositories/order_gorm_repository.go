package repositories

import (
	"errors"
	"fmt"

	"reseller/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{db: db}
}

// GetAll retrieves all orders, newest first.
func (r *GORMOrderRepository) GetAll() ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Order("order_date desc, id asc").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get all orders: %w", err)
	}
	return orders, nil
}

// GetByID retrieves a single order by its ID.
func (r *GORMOrderRepository) GetByID(id string) (*models.Order, error) {
	var order models.Order
	if err := r.db.First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", models.ErrOrderNotFound, id)
		}
		return nil, fmt.Errorf("failed to get order by ID %s: %w", id, err)
	}
	return &order, nil
}

// Create inserts a new order.
func (r *GORMOrderRepository) Create(order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if err := r.db.Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// Update reads, modifies and saves the order inside one transaction.
func (r *GORMOrderRepository) Update(id string, fn func(*models.Order) error) (*models.Order, error) {
	var order models.Order
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s", models.ErrOrderNotFound, id)
			}
			return fmt.Errorf("failed to load order %s: %w", id, err)
		}
		if err := fn(&order); err != nil {
			return err
		}
		order.ID = id
		if err := tx.Save(&order).Error; err != nil {
			return fmt.Errorf("failed to update order: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}
