package models_test

import (
	"testing"

	"reseller/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestProduct_SetSellerPriceRecomputesProfit(t *testing.T) {
	p := models.Product{
		ID:            "1",
		OriginalPrice: decimal.NewFromInt(150),
		SellerPrice:   decimal.NewFromInt(200),
		Profit:        decimal.NewFromInt(50),
	}

	p.SetSellerPrice(decimal.RequireFromString("210.555"))
	assert.Equal(t, "210.56", p.SellerPrice.String())
	assert.Equal(t, "60.56", p.Profit.String())
	assert.Equal(t, "150", p.OriginalPrice.String())

	p.SetSellerPrice(decimal.NewFromInt(100))
	assert.Equal(t, "-50", p.Profit.String())
}

func TestProduct_ExpectedProfitLeavesProductAlone(t *testing.T) {
	p := models.Product{OriginalPrice: decimal.NewFromInt(80), SellerPrice: decimal.NewFromInt(120), Profit: decimal.NewFromInt(40)}

	assert.Equal(t, "55", p.ExpectedProfit(decimal.NewFromInt(135)).String())
	assert.Equal(t, "120", p.SellerPrice.String())
	assert.Equal(t, "40", p.Profit.String())
}

func TestCustomerInfo_Normalize(t *testing.T) {
	c := models.CustomerInfo{Name: "  Ali ", Phone: "\t0500000000", Address: " ", Notes: ""}.Normalize()
	assert.Equal(t, "Ali", c.Name)
	assert.Equal(t, "0500000000", c.Phone)
	assert.Empty(t, c.Address)
}
