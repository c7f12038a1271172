package models

import (
	"errors"
	"fmt"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrOrderNotFound   = errors.New("order not found")
	ErrSellerNotFound  = errors.New("seller not found")
	ErrUnknownStatus   = errors.New("unknown order status")

	// ErrIncompleteCustomerInfo is the one validation failure the checkout
	// form reports. It carries no per-field detail.
	ErrIncompleteCustomerInfo = errors.New("please fill in all required fields")

	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrComingSoon      = errors.New("coming soon")
)

// InvalidTransitionError is returned when an order is asked to move to a
// status the lifecycle does not allow from its current one.
type InvalidTransitionError struct {
	From OrderStatus
	To   OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid order status transition from %s to %s", e.From, e.To)
}

// ParamReason says what was wrong with a route parameter.
type ParamReason string

const (
	ParamMissing   ParamReason = "missing"
	ParamMalformed  ParamReason = "malformed"
	ParamOutOfRange ParamReason = "out_of_range"
)

// ParamError reports a missing, malformed or out-of-range route parameter.
type ParamError struct {
	Name   string
	Value  string
	Reason ParamReason
}

func (e *ParamError) Error() string {
	switch e.Reason {
	case ParamMissing:
		return fmt.Sprintf("missing parameter %q", e.Name)
	case ParamOutOfRange:
		return fmt.Sprintf("parameter %q is out of range", e.Name)
	}
	return fmt.Sprintf("malformed parameter %q: %q", e.Name, e.Value)
}
