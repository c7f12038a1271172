package services

import (
	"log"
	"time"

	"reseller/internal/models"
	"reseller/internal/pricing"
	"reseller/internal/referral"
	"reseller/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// CheckoutService backs the buyer's page behind a referral link.
//
// Submit only builds the order. Handing it to the order store is the
// caller's decision (see OrderService.PlaceOrder).
type CheckoutService struct {
	productRepo repositories.ProductRepository
	validate    *validator.Validate
	now         func() time.Time
}

// NewCheckoutService creates a new CheckoutService.
func NewCheckoutService(productRepo repositories.ProductRepository) *CheckoutService {
	return &CheckoutService{
		productRepo: productRepo,
		validate:    validator.New(),
		now:         time.Now,
	}
}

// Product returns the product the link points at, or an error wrapping
// models.ErrProductNotFound.
func (s *CheckoutService) Product(params referral.BuyParams) (*models.Product, error) {
	return s.productRepo.GetByID(params.ProductID)
}

// Submit validates the customer form and assembles a pending order at the
// selling price carried by the link. Profit is taken against the stored
// original price, never the link's copy. A zero quantity means one item.
func (s *CheckoutService) Submit(params referral.BuyParams, customer models.CustomerInfo, quantity int) (*models.Order, error) {
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 {
		return nil, models.ErrInvalidQuantity
	}

	product, err := s.productRepo.GetByID(params.ProductID)
	if err != nil {
		return nil, err
	}

	customer = customer.Normalize()
	if err := s.validate.Struct(customer); err != nil {
		return nil, models.ErrIncompleteCustomerInfo
	}

	total := pricing.Total(params.Price, quantity)
	profit := pricing.Total(pricing.Profit(params.Price, product.OriginalPrice), quantity)
	if err := pricing.CheckRange(total); err != nil {
		return nil, err
	}
	if err := pricing.CheckRange(profit); err != nil {
		return nil, err
	}

	now := s.now()
	order := &models.Order{
		ID:              uuid.New().String(),
		CustomerName:    customer.Name,
		CustomerPhone:   customer.Phone,
		CustomerAddress: customer.Address,
		Notes:           customer.Notes,
		ProductID:       product.ID,
		ProductName:     product.Name,
		SellerID:        params.SellerID,
		SellerName:      params.SellerName,
		Quantity:        quantity,
		TotalPrice:      total,
		Profit:          profit,
		Status:          models.StatusPending,
		OrderDate:       models.DateOf(now),
		CreatedAt:       now,
	}

	log.Printf("Checkout order %s assembled: product=%s seller=%s qty=%d total=%s profit=%s",
		order.ID, order.ProductID, order.SellerID, order.Quantity, order.TotalPrice, order.Profit)
	return order, nil
}
