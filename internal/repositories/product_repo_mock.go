package repositories

import (
	"fmt"
	"sync"
	"time"

	"reseller/internal/models"

	"github.com/google/uuid"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
// Listings keep insertion order.
type MockProductRepository struct {
	products map[string]models.Product
	ids      []string
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]models.Product),
	}
}

// GetAll returns all products.
func (r *MockProductRepository) GetAll() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.ids))
	for _, id := range r.ids {
		productList = append(productList, cloneProduct(r.products[id]))
	}
	return productList, nil
}

// GetByID returns a product by its ID.
func (r *MockProductRepository) GetByID(id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrProductNotFound, id)
	}
	product = cloneProduct(product)
	return &product, nil
}

// Create adds a new product.
func (r *MockProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if _, exists := r.products[product.ID]; exists {
		return fmt.Errorf("product with ID %s already exists", product.ID)
	}
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now
	r.products[product.ID] = cloneProduct(*product)
	r.ids = append(r.ids, product.ID)
	return nil
}

// Update applies fn to a copy of the stored product and keeps it on success.
func (r *MockProductRepository) Update(id string, fn func(*models.Product) error) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrProductNotFound, id)
	}
	product := cloneProduct(stored)
	if err := fn(&product); err != nil {
		return nil, err
	}
	product.ID = id
	product.UpdatedAt = time.Now()
	r.products[id] = cloneProduct(product)
	return &product, nil
}

func cloneProduct(p models.Product) models.Product {
	if p.Features != nil {
		p.Features = append([]string(nil), p.Features...)
	}
	return p
}
