package models

import "github.com/shopspring/decimal"

// AnalyticsReport is the seller's profit dashboard.
type AnalyticsReport struct {
	TotalRevenue  decimal.Decimal  `json:"total_revenue"`
	TotalProfit   decimal.Decimal  `json:"total_profit"`
	TotalOrders   int              `json:"total_orders"`
	TotalProducts int              `json:"total_products"`
	Monthly       []MonthlyFigures `json:"monthly"`
	TopProducts   []ProductFigures `json:"top_products"`
	Tips          []Tip            `json:"tips"`
	Live          OrderStats       `json:"live"` // Computed from the order store, not the snapshot
}

type MonthlyFigures struct {
	Month   string          `json:"month"`
	Revenue decimal.Decimal `json:"revenue"`
	Profit  decimal.Decimal `json:"profit"`
}

type ProductFigures struct {
	Name   string          `json:"name"`
	Sales  int             `json:"sales"`
	Profit decimal.Decimal `json:"profit"`
}

// Tip is a fixed piece of advice shown under the figures.
type Tip struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// OrderStats are the two figures the orders screen shows above the list.
type OrderStats struct {
	PendingCount    int             `json:"pending_count"`
	DeliveredProfit decimal.Decimal `json:"delivered_profit"`
}
