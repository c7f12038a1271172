package models

import (
	"time"

	"reseller/internal/pricing"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry the seller resells at their own price.
type Product struct {
	ID            string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name          string          `json:"name" validate:"required,max=100"`
	ImageURL      string          `json:"image_url" validate:"omitempty,url"`
	OriginalPrice decimal.Decimal `json:"original_price" gorm:"type:decimal(12,2)"` // Wholesale price, fixed after creation
	SellerPrice   decimal.Decimal `json:"seller_price" gorm:"type:decimal(12,2)"`
	Profit        decimal.Decimal `json:"profit" gorm:"type:decimal(12,2)"`
	Category      string          `json:"category"`
	Description   string          `json:"description" validate:"omitempty,max=500"`
	Features      []string        `json:"features" gorm:"serializer:json"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// SetSellerPrice stores a new selling price and recomputes Profit.
func (p *Product) SetSellerPrice(price decimal.Decimal) {
	p.SellerPrice = pricing.Round(price)
	p.Profit = pricing.Profit(p.SellerPrice, p.OriginalPrice)
}

// ExpectedProfit is the profit p would make at price, without changing p.
func (p *Product) ExpectedProfit(price decimal.Decimal) decimal.Decimal {
	return pricing.Profit(price, p.OriginalPrice)
}
