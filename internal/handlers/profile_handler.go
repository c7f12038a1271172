package handlers

import (
	"errors"
	"log"

	"reseller/internal/middleware"
	"reseller/internal/models"
	"reseller/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProfileHandler serves the seller's account page.
type ProfileHandler struct {
	service *services.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(service *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// RegisterRoutes registers the profile routes with the Fiber app.
func (h *ProfileHandler) RegisterRoutes(router fiber.Router) {
	profileRoutes := router.Group("/profile")
	profileRoutes.Get("/", h.HandleGetProfile)
	profileRoutes.Post("/menu/:item", h.HandleSelectMenuItem)
}

// HandleGetProfile returns the authenticated seller's profile card.
func (h *ProfileHandler) HandleGetProfile(c *fiber.Ctx) error {
	sellerID := middleware.SellerID(c)
	profile, err := h.service.Profile(sellerID)
	if err != nil {
		if errors.Is(err, models.ErrSellerNotFound) {
			return NotFoundResponse(c, "seller not found")
		}
		log.Printf("Error loading profile of seller %s: %v", sellerID, err)
		return InternalServerErrorResponse(c, "Could not load profile", nil)
	}
	return SuccessResponse(c, "Profile retrieved", profile)
}

// HandleSelectMenuItem answers a tap on a menu entry. Only logout does
// anything; the client discards its token on success.
func (h *ProfileHandler) HandleSelectMenuItem(c *fiber.Ctx) error {
	key := c.Params("item")
	item, err := h.service.SelectMenuItem(key)
	switch {
	case err == nil:
		return SuccessResponse(c, "Logged out", item)
	case errors.Is(err, models.ErrComingSoon):
		return NotImplementedResponse(c, err.Error(), map[string]interface{}{"item": item.Key})
	case errors.Is(err, services.ErrMenuItemNotFound):
		return NotFoundResponse(c, err.Error())
	}
	log.Printf("Error selecting menu item %s: %v", key, err)
	return InternalServerErrorResponse(c, "Could not handle menu item", nil)
}
