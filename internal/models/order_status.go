package models

import "fmt"

// OrderStatus is the fulfilment stage of an order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusShipped   OrderStatus = "shipped"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// AllStatuses lists every status in lifecycle order.
var AllStatuses = []OrderStatus{
	StatusPending,
	StatusConfirmed,
	StatusShipped,
	StatusDelivered,
	StatusCancelled,
}

// transitions is the whole lifecycle: forward path plus one cancel escape
// from pending. Delivered and cancelled have no entry.
var transitions = map[OrderStatus][]OrderStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusShipped},
	StatusShipped:   {StatusDelivered},
}

// ParseOrderStatus converts s into a known status.
func ParseOrderStatus(s string) (OrderStatus, error) {
	st := OrderStatus(s)
	if !st.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
	return st, nil
}

func (s OrderStatus) String() string { return string(s) }

// Valid reports whether s is one of the five lifecycle states.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no transition leaves s.
func (s OrderStatus) IsTerminal() bool {
	return s.Valid() && len(transitions[s]) == 0
}

// NextStatuses returns the statuses reachable from s in one step, i.e. the
// actions a client should offer for an order in state s.
func (s OrderStatus) NextStatuses() []OrderStatus {
	next := transitions[s]
	out := make([]OrderStatus, len(next))
	copy(out, next)
	return out
}

// CanTransitionTo reports whether s -> to is in the transition table.
func (s OrderStatus) CanTransitionTo(to OrderStatus) bool {
	for _, n := range transitions[s] {
		if n == to {
			return true
		}
	}
	return false
}
