package repositories

import (
	"errors"
	"fmt"

	"reseller/internal/models"

	"github.com/google/uuid"
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

// GetAll retrieves all products from the database.
func (r *GORMProductRepository) GetAll() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Order("created_at asc, id asc").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", models.ErrProductNotFound, id)
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update reads, modifies and saves the product inside one transaction.
func (r *GORMProductRepository) Update(id string, fn func(*models.Product) error) (*models.Product, error) {
	var product models.Product
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&product, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s", models.ErrProductNotFound, id)
			}
			return fmt.Errorf("failed to load product %s: %w", id, err)
		}
		if err := fn(&product); err != nil {
			return err
		}
		product.ID = id
		if err := tx.Save(&product).Error; err != nil {
			return fmt.Errorf("failed to update product: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}
