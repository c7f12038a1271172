package repositories

import (
	"fmt"
	"sync"
	"time"

	"reseller/internal/models"

	"github.com/google/uuid"
)

// MockSellerRepository is an in-memory implementation of SellerRepository.
type MockSellerRepository struct {
	sellers map[string]models.Seller
	mu      sync.RWMutex
}

// NewMockSellerRepository creates a new instance of MockSellerRepository.
func NewMockSellerRepository() *MockSellerRepository {
	return &MockSellerRepository{
		sellers: make(map[string]models.Seller),
	}
}

// Create adds a seller. Username and email must be unique.
func (r *MockSellerRepository) Create(seller *models.Seller) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if seller.ID == "" {
		seller.ID = uuid.New().String()
	}
	for _, s := range r.sellers {
		if s.ID == seller.ID || s.Username == seller.Username || s.Email == seller.Email {
			return fmt.Errorf("seller %s already exists", seller.Username)
		}
	}
	now := time.Now()
	seller.CreatedAt = now
	seller.UpdatedAt = now
	r.sellers[seller.ID] = *seller
	return nil
}

// GetByUsername returns a seller by username.
func (r *MockSellerRepository) GetByUsername(username string) (*models.Seller, error) {
	return r.find(username, func(s models.Seller) bool { return s.Username == username })
}

// GetByEmail returns a seller by email.
func (r *MockSellerRepository) GetByEmail(email string) (*models.Seller, error) {
	return r.find(email, func(s models.Seller) bool { return s.Email == email })
}

// GetByID returns a seller by ID.
func (r *MockSellerRepository) GetByID(id string) (*models.Seller, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seller, ok := r.sellers[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrSellerNotFound, id)
	}
	return &seller, nil
}

func (r *MockSellerRepository) find(key string, match func(models.Seller) bool) (*models.Seller, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.sellers {
		if match(s) {
			seller := s
			return &seller, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", models.ErrSellerNotFound, key)
}
