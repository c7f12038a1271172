package models

import "github.com/shopspring/decimal"

// Profile is the seller's account card with quick figures and the menu.
type Profile struct {
	Seller     *Seller         `json:"seller"`
	Products   int             `json:"products"`
	Orders     int             `json:"orders"`
	Profit     decimal.Decimal `json:"profit"`
	Menu       []MenuSection   `json:"menu"`
	AppVersion string          `json:"app_version"`
}

type MenuSection struct {
	Title string     `json:"title"`
	Items []MenuItem `json:"items"`
}

type MenuItem struct {
	Key      string `json:"key"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
}
