package repositories

import (
	"errors"
	"fmt"

	"reseller/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMSellerRepository is a GORM implementation of SellerRepository.
type GORMSellerRepository struct {
	db *gorm.DB
}

// NewGORMSellerRepository creates a new instance of GORMSellerRepository.
func NewGORMSellerRepository(db *gorm.DB) *GORMSellerRepository {
	return &GORMSellerRepository{
		db: db,
	}
}

// Create creates a new seller in the database.
func (r *GORMSellerRepository) Create(seller *models.Seller) error {
	if seller.ID == "" {
		seller.ID = uuid.New().String()
	}
	if err := r.db.Create(seller).Error; err != nil {
		return fmt.Errorf("failed to create seller: %w", err)
	}
	return nil
}

// GetByUsername retrieves a seller by username.
func (r *GORMSellerRepository) GetByUsername(username string) (*models.Seller, error) {
	return r.first("username = ?", username)
}

// GetByEmail retrieves a seller by email.
func (r *GORMSellerRepository) GetByEmail(email string) (*models.Seller, error) {
	return r.first("email = ?", email)
}

// GetByID retrieves a seller by ID.
func (r *GORMSellerRepository) GetByID(id string) (*models.Seller, error) {
	return r.first("id = ?", id)
}

func (r *GORMSellerRepository) first(query string, arg string) (*models.Seller, error) {
	var seller models.Seller
	if err := r.db.First(&seller, query, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", models.ErrSellerNotFound, arg)
		}
		return nil, fmt.Errorf("failed to get seller %s: %w", arg, err)
	}
	return &seller, nil
}
