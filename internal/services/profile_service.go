package services

import (
	"errors"
	"fmt"

	"reseller/internal/models"
	"reseller/internal/repositories"
)

// MenuLogout is the one menu entry that does something: the client drops
// its token.
const MenuLogout = "logout"

// ErrMenuItemNotFound is returned for a key that is not on the menu.
var ErrMenuItemNotFound = errors.New("menu item not found")

var profileMenu = []models.MenuSection{
	{Title: "Account", Items: []models.MenuItem{
		{Key: "settings", Title: "Settings", Subtitle: "App and account settings"},
		{Key: "notifications", Title: "Notifications", Subtitle: "Manage notifications and alerts"},
		{Key: "payment-methods", Title: "Payment methods", Subtitle: "Manage payment and payout methods"},
	}},
	{Title: "Security", Items: []models.MenuItem{
		{Key: "security", Title: "Security and privacy", Subtitle: "Password and security"},
	}},
	{Title: "Support", Items: []models.MenuItem{
		{Key: "help", Title: "Help and support", Subtitle: "FAQ and technical support"},
		{Key: "rate", Title: "Rate the app", Subtitle: "Tell us what you think"},
		{Key: "share", Title: "Share the app", Subtitle: "Invite your friends"},
	}},
	{Title: "", Items: []models.MenuItem{
		{Key: MenuLogout, Title: "Log out"},
	}},
}

// ProfileService serves the seller's account page.
type ProfileService struct {
	sellers  repositories.SellerRepository
	snapshot models.AnalyticsReport
	version  string
}

// NewProfileService creates a new ProfileService. The quick figures on the
// profile card come from snapshot.
func NewProfileService(sellers repositories.SellerRepository, snapshot models.AnalyticsReport, version string) *ProfileService {
	return &ProfileService{sellers: sellers, snapshot: snapshot, version: version}
}

// Profile returns the profile card of the given seller.
func (s *ProfileService) Profile(sellerID string) (*models.Profile, error) {
	seller, err := s.sellers.GetByID(sellerID)
	if err != nil {
		return nil, err
	}
	seller.Password = ""

	return &models.Profile{
		Seller:     seller,
		Products:   s.snapshot.TotalProducts,
		Orders:     s.snapshot.TotalOrders,
		Profit:     s.snapshot.TotalProfit,
		Menu:       Menu(),
		AppVersion: s.version,
	}, nil
}

// SelectMenuItem handles a tap on a menu entry. Every entry except logout
// is a placeholder and returns an error wrapping models.ErrComingSoon.
func (s *ProfileService) SelectMenuItem(key string) (*models.MenuItem, error) {
	for _, section := range profileMenu {
		for _, item := range section.Items {
			if item.Key != key {
				continue
			}
			item := item
			if key == MenuLogout {
				return &item, nil
			}
			return &item, fmt.Errorf("%w: %s", models.ErrComingSoon, item.Title)
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrMenuItemNotFound, key)
}

// Menu returns a copy of the profile menu.
func Menu() []models.MenuSection {
	out := make([]models.MenuSection, len(profileMenu))
	for i, section := range profileMenu {
		out[i] = models.MenuSection{
			Title: section.Title,
			Items: append([]models.MenuItem(nil), section.Items...),
		}
	}
	return out
}
