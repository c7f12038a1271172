package models

import "reseller/internal/pricing"

// ComputeOrderStats scans orders once: pending count and the profit summed
// over delivered orders.
func ComputeOrderStats(orders []Order) OrderStats {
	var s OrderStats
	for i := range orders {
		s.Add(&orders[i])
	}
	return s
}

// Add counts a new order in its current status.
func (s *OrderStats) Add(o *Order) {
	s.enter(o.Status, o)
}

// Move accounts for o having gone from status from to its current status.
func (s *OrderStats) Move(from OrderStatus, o *Order) {
	s.leave(from, o)
	s.enter(o.Status, o)
}

func (s *OrderStats) enter(st OrderStatus, o *Order) {
	switch st {
	case StatusPending:
		s.PendingCount++
	case StatusDelivered:
		s.DeliveredProfit = pricing.Round(s.DeliveredProfit.Add(o.Profit))
	}
}

func (s *OrderStats) leave(st OrderStatus, o *Order) {
	switch st {
	case StatusPending:
		s.PendingCount--
	case StatusDelivered:
		s.DeliveredProfit = pricing.Round(s.DeliveredProfit.Sub(o.Profit))
	}
}
