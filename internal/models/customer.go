package models

import "strings"

// CustomerInfo is the buyer's checkout form. It lives only until the form
// is submitted.
type CustomerInfo struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Address string `json:"address" validate:"required"`
	Notes   string `json:"notes"`
}

// Normalize trims surrounding whitespace so a blank field counts as empty.
func (c CustomerInfo) Normalize() CustomerInfo {
	return CustomerInfo{
		Name:    strings.TrimSpace(c.Name),
		Phone:   strings.TrimSpace(c.Phone),
		Address: strings.TrimSpace(c.Address),
		Notes:   strings.TrimSpace(c.Notes),
	}
}
