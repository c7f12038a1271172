package models

import "time"

// Seller is a reseller account. Its ID and DisplayName travel with every
// referral link the seller shares.
type Seller struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid|alphanum"`
	Username    string    `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	DisplayName string    `json:"display_name" gorm:"type:varchar(100)" validate:"required,max=100"`
	Email       string    `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Phone       string    `json:"phone" gorm:"type:varchar(32)"`
	Password    string    `json:"password,omitempty" gorm:"type:varchar(255)" validate:"required,min=6"` // Cleared before any response
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
