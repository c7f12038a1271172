package handlers

import (
	"log"

	"reseller/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AnalyticsHandler serves the profit dashboard.
type AnalyticsHandler struct {
	service *services.AnalyticsService
}

func NewAnalyticsHandler(service *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

func (h *AnalyticsHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/analytics", h.HandleGetReport)
}

func (h *AnalyticsHandler) HandleGetReport(c *fiber.Ctx) error {
	report, err := h.service.Report()
	if err != nil {
		log.Printf("Error building analytics report: %v", err)
		return InternalServerErrorResponse(c, "Could not build analytics report", nil)
	}
	return SuccessResponse(c, "Analytics report", report)
}
