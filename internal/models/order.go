package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order represents one customer purchase request placed through a seller's link.
type Order struct {
	ID              string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CustomerName    string          `json:"customer_name"`
	CustomerPhone   string          `json:"customer_phone"`
	CustomerAddress string          `json:"customer_address"`
	Notes           string          `json:"notes,omitempty"`
	ProductID       string          `json:"product_id" gorm:"type:varchar(36);index"`
	ProductName     string          `json:"product_name"`
	SellerID        string          `json:"seller_id" gorm:"type:varchar(36);index"`
	SellerName      string          `json:"seller_name"`
	Quantity        int             `json:"quantity"`
	TotalPrice      decimal.Decimal `json:"total_price" gorm:"type:decimal(12,2)"`
	Profit          decimal.Decimal `json:"profit" gorm:"type:decimal(12,2)"` // Seller's share, not checked against TotalPrice
	Status          OrderStatus     `json:"status" gorm:"type:varchar(16);index"`
	OrderDate       time.Time       `json:"order_date"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// TransitionTo moves the order to status to. Only Status changes; a pair
// outside the lifecycle table is rejected with *InvalidTransitionError.
func (o *Order) TransitionTo(to OrderStatus) error {
	if !to.Valid() {
		return ErrUnknownStatus
	}
	if !o.Status.CanTransitionTo(to) {
		return &InvalidTransitionError{From: o.Status, To: to}
	}
	o.Status = to
	return nil
}

// Actions lists the statuses the order can move to next.
func (o *Order) Actions() []OrderStatus {
	return o.Status.NextStatuses()
}

// DateOf truncates t to its calendar date in UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
