// Package pricing holds the money rules shared by the catalog and checkout:
// a fixed precision of two decimal places, rounded half to even.
package pricing

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Places is the number of decimal places every stored amount carries.
const Places = 2

// maxInputLen bounds the raw text Parse accepts. Anything longer cannot be a
// price below MaxPrice at a sane precision.
const maxInputLen = 32

// maxIntegerDigits is the integer part of a decimal(12,2) column.
const maxIntegerDigits = 10

// MaxPrice is the exclusive upper bound on the magnitude of any stored
// amount.
var MaxPrice = decimal.New(1, maxIntegerDigits)

var (
	// ErrInvalidPrice is returned for blank or non-numeric price input.
	ErrInvalidPrice = errors.New("price must be a number")
	// ErrNegativePrice is returned when a price is below zero.
	ErrNegativePrice = errors.New("price must not be negative")
	// ErrPriceOutOfRange is returned for amounts at or above MaxPrice.
	ErrPriceOutOfRange = errors.New("price is out of range")
)

// Round applies banker's rounding to Places decimal places.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(Places)
}

// Profit returns sellerPrice - originalPrice. A negative result is allowed.
func Profit(sellerPrice, originalPrice decimal.Decimal) decimal.Decimal {
	return Round(sellerPrice.Sub(originalPrice))
}

// Total returns unit * quantity, rounded.
func Total(unit decimal.Decimal, quantity int) decimal.Decimal {
	return Round(unit.Mul(decimal.NewFromInt(int64(quantity))))
}

// Parse turns user input into a rounded, non-negative amount below
// MaxPrice. Only plain decimal notation is accepted.
func Parse(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidPrice
	}
	if strings.ContainsAny(s, "eE") {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidPrice, s)
	}
	if len(s) > maxInputLen {
		return decimal.Zero, fmt.Errorf("%w: %d characters", ErrPriceOutOfRange, len(s))
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidPrice, s)
	}
	if err := CheckNonNegative(d); err != nil {
		return decimal.Zero, err
	}
	d = Round(d)
	if err := CheckRange(d); err != nil {
		return decimal.Zero, err
	}
	return d, nil
}

// CheckRange rejects amounts whose magnitude reaches MaxPrice. It counts
// digits instead of comparing, so a huge exponent costs nothing.
func CheckRange(d decimal.Decimal) error {
	if d.IsZero() {
		return nil
	}
	if digits := d.NumDigits() + int(d.Exponent()); digits > maxIntegerDigits {
		return fmt.Errorf("%w: %d integer digits", ErrPriceOutOfRange, digits)
	}
	return nil
}

// Check applies CheckNonNegative and CheckRange.
func Check(d decimal.Decimal) error {
	if err := CheckNonNegative(d); err != nil {
		return err
	}
	return CheckRange(d)
}

// CheckNonNegative rejects amounts below zero.
func CheckNonNegative(d decimal.Decimal) error {
	if d.IsNegative() {
		return fmt.Errorf("%w: %s", ErrNegativePrice, d.String())
	}
	return nil
}

// Input is a price field in a request body. It accepts a JSON number or a
// JSON string and keeps the raw text so Parse can report a typed error
// instead of a decoder failure.
type Input string

// UnmarshalJSON implements json.Unmarshaler.
func (in *Input) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*in = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*in = Input(str)
		return nil
	}
	*in = Input(data)
	return nil
}

// Decimal parses the input with Parse.
func (in Input) Decimal() (decimal.Decimal, error) {
	return Parse(string(in))
}
