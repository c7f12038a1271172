package pricing_test

import (
	"encoding/json"
	"testing"

	"reseller/internal/pricing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestProfit(t *testing.T) {
	cases := []struct {
		seller, original, want string
	}{
		{"200", "150", "50"},
		{"120", "80", "40"},
		{"75", "45", "30"},
		{"100", "150", "-50"},
		{"0", "0", "0"},
		{"19.99", "10.005", "9.98"},
		{"10.125", "0", "10.12"},
		{"10.135", "0", "10.14"},
	}
	for _, tc := range cases {
		got := pricing.Profit(d(tc.seller), d(tc.original))
		assert.Truef(t, d(tc.want).Equal(got), "Profit(%s, %s) = %s, want %s", tc.seller, tc.original, got, tc.want)
	}
}

func TestProfitMatchesSubtraction(t *testing.T) {
	for seller := int64(0); seller <= 300; seller += 7 {
		for original := int64(0); original <= 300; original += 11 {
			s := decimal.New(seller, -1)
			o := decimal.New(original, -1)
			assert.True(t, s.Sub(o).Equal(pricing.Profit(s, o)))
		}
	}
}

func TestTotal(t *testing.T) {
	assert.True(t, d("240").Equal(pricing.Total(d("120"), 2)))
	assert.True(t, d("0").Equal(pricing.Total(d("120"), 0)))
}

func TestParse(t *testing.T) {
	got, err := pricing.Parse(" 210.505 ")
	require.NoError(t, err)
	assert.Equal(t, "210.5", got.String())

	_, err = pricing.Parse("")
	assert.ErrorIs(t, err, pricing.ErrInvalidPrice)

	_, err = pricing.Parse("abc")
	assert.ErrorIs(t, err, pricing.ErrInvalidPrice)

	_, err = pricing.Parse("-1")
	assert.ErrorIs(t, err, pricing.ErrNegativePrice)

	got, err = pricing.Parse("0")
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestParseBounds(t *testing.T) {
	cases := []struct {
		in   string
		want error
	}{
		{"1e400", pricing.ErrInvalidPrice},
		{"1E3", pricing.ErrInvalidPrice},
		{"1e999999999", pricing.ErrInvalidPrice},
		{"1e-999999999", pricing.ErrInvalidPrice},
		{"99999999999", pricing.ErrPriceOutOfRange},
		{"10000000000", pricing.ErrPriceOutOfRange},
		{"9999999999.999", pricing.ErrPriceOutOfRange},
		{"1234567890123456789012345678901234567890", pricing.ErrPriceOutOfRange},
	}
	for _, tc := range cases {
		_, err := pricing.Parse(tc.in)
		assert.ErrorIsf(t, err, tc.want, "Parse(%q)", tc.in)
	}

	got, err := pricing.Parse("9999999999.99")
	require.NoError(t, err)
	assert.Equal(t, "9999999999.99", got.String())
}

func TestCheckRange(t *testing.T) {
	assert.NoError(t, pricing.CheckRange(decimal.Zero))
	assert.NoError(t, pricing.CheckRange(d("-9999999999.99")))
	assert.ErrorIs(t, pricing.CheckRange(d("-10000000000")), pricing.ErrPriceOutOfRange)
	assert.ErrorIs(t, pricing.CheckRange(decimal.New(1, 999999999)), pricing.ErrPriceOutOfRange)
	assert.NoError(t, pricing.CheckRange(decimal.New(1, -999999999)))

	assert.ErrorIs(t, pricing.Check(d("-1")), pricing.ErrNegativePrice)
	assert.ErrorIs(t, pricing.Check(pricing.MaxPrice), pricing.ErrPriceOutOfRange)
}

func TestInputAcceptsNumbersAndStrings(t *testing.T) {
	var body struct {
		Price pricing.Input `json:"price"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"price": 199.5}`), &body))
	v, err := body.Price.Decimal()
	require.NoError(t, err)
	assert.Equal(t, "199.5", v.String())

	require.NoError(t, json.Unmarshal([]byte(`{"price": "42"}`), &body))
	v, err = body.Price.Decimal()
	require.NoError(t, err)
	assert.Equal(t, "42", v.String())

	require.NoError(t, json.Unmarshal([]byte(`{"price": "\u0031\u0032.5"}`), &body))
	v, err = body.Price.Decimal()
	require.NoError(t, err)
	assert.Equal(t, "12.5", v.String())

	require.NoError(t, json.Unmarshal([]byte(`{"price": "cheap"}`), &body))
	_, err = body.Price.Decimal()
	assert.ErrorIs(t, err, pricing.ErrInvalidPrice)

	require.NoError(t, json.Unmarshal([]byte(`{"price": null}`), &body))
	_, err = body.Price.Decimal()
	assert.ErrorIs(t, err, pricing.ErrInvalidPrice)
}
