package services

import (
	"context"
	"fmt"
	"log"

	"reseller/internal/events"
	"reseller/internal/models"
	"reseller/internal/pricing"
	"reseller/internal/referral"
	"reseller/internal/repositories"

	"github.com/shopspring/decimal"
)

// ProductService handles the seller's catalog: listing, price edits and
// referral links.
type ProductService struct {
	repo      repositories.ProductRepository
	links     referral.Generator
	publisher events.Publisher
}

// NewProductService creates a new ProductService. publisher may be nil.
func NewProductService(repo repositories.ProductRepository, links referral.Generator, publisher events.Publisher) *ProductService {
	return &ProductService{
		repo:      repo,
		links:     links,
		publisher: publisher,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// UpdatePrice sets the seller's price and recomputes the profit. The
// original price is never touched.
func (s *ProductService) UpdatePrice(ctx context.Context, id string, price decimal.Decimal) (*models.Product, error) {
	if err := pricing.Check(price); err != nil {
		return nil, err
	}

	product, err := s.repo.Update(id, func(p *models.Product) error {
		p.SetSellerPrice(price)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update price of product %s: %w", id, err)
	}

	log.Printf("Product %s price set to %s (profit %s)", id, product.SellerPrice, product.Profit)
	events.Emit(ctx, s.publisher, events.PriceUpdated, product.ID, events.PriceUpdatedData{
		ProductID:   product.ID,
		SellerPrice: product.SellerPrice,
		Profit:      product.Profit,
	})
	return product, nil
}

// PreviewProfit returns the profit the product would make at price without
// saving anything.
func (s *ProductService) PreviewProfit(id string, price decimal.Decimal) (decimal.Decimal, error) {
	if err := pricing.Check(price); err != nil {
		return decimal.Zero, err
	}
	product, err := s.repo.GetByID(id)
	if err != nil {
		return decimal.Zero, err
	}
	return product.ExpectedProfit(price), nil
}

// GenerateLink asks the link generator for a referral link to the product
// at its current seller price.
func (s *ProductService) GenerateLink(ctx context.Context, id, sellerID, sellerName string) (referral.Link, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return referral.Link{}, err
	}
	link, err := s.links.Generate(ctx, product, sellerID, sellerName)
	if err != nil {
		return referral.Link{}, fmt.Errorf("failed to generate link for product %s: %w", id, err)
	}
	return link, nil
}
