package handlers

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"reseller/internal/models"
	"reseller/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service: service,
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Get("/stats", h.HandleGetStats)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	orderRoutes.Patch("/:id/status", h.HandleUpdateOrderStatus)
}

// OrderView is an order together with the actions the seller can take on it.
type OrderView struct {
	models.Order
	Actions []models.OrderStatus `json:"actions"`
}

func viewOf(o models.Order) OrderView {
	return OrderView{Order: o, Actions: o.Actions()}
}

// HandleGetOrders retrieves all orders, newest first.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetAllOrders()
	if err != nil {
		log.Printf("Error getting all orders: %v", err)
		return InternalServerErrorResponse(c, "Could not retrieve orders", nil)
	}
	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, viewOf(o))
	}
	return SuccessResponse(c, "Orders retrieved", views)
}

// HandleGetStats returns the pending count and the delivered profit.
func (h *OrderHandler) HandleGetStats(c *fiber.Ctx) error {
	stats, err := h.service.Stats()
	if err != nil {
		log.Printf("Error computing order stats: %v", err)
		return InternalServerErrorResponse(c, "Could not compute order stats", nil)
	}
	return SuccessResponse(c, "Order stats", stats)
}

// HandleGetOrderByID retrieves a single order by its ID.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	orderID := c.Params("id")
	order, err := h.service.GetOrderByID(orderID)
	if err != nil {
		log.Printf("Error getting order by ID %s: %v", orderID, err)
		if errors.Is(err, models.ErrOrderNotFound) {
			return NotFoundResponse(c, fmt.Sprintf("Order with ID %s not found", orderID))
		}
		return InternalServerErrorResponse(c, "Could not retrieve order", nil)
	}
	return SuccessResponse(c, "Order retrieved", viewOf(*order))
}

// HandleUpdateOrderStatus moves an order along its lifecycle.
func (h *OrderHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	orderID := c.Params("id")
	var updateData struct {
		Status string `json:"status"`
	}

	if err := c.BodyParser(&updateData); err != nil {
		log.Printf("Error parsing request body for status update: %v", err)
		return BadRequestResponse(c, "Invalid request body for status update", map[string]interface{}{"body": err.Error()})
	}

	if strings.TrimSpace(updateData.Status) == "" {
		return BadRequestResponse(c, "Status is required for order status update", nil)
	}
	to, err := models.ParseOrderStatus(updateData.Status)
	if err != nil {
		return BadRequestResponse(c, "Unknown order status", map[string]interface{}{"status": updateData.Status})
	}

	order, err := h.service.TransitionOrder(c.UserContext(), orderID, to)
	if err != nil {
		log.Printf("Error updating order status for order %s: %v", orderID, err)
		var transitionErr *models.InvalidTransitionError
		switch {
		case errors.As(err, &transitionErr):
			return ConflictResponse(c, "Order status change not allowed", map[string]interface{}{
				"from":    transitionErr.From,
				"to":      transitionErr.To,
				"allowed": transitionErr.From.NextStatuses(),
			})
		case errors.Is(err, models.ErrOrderNotFound):
			return NotFoundResponse(c, fmt.Sprintf("Order with ID %s not found", orderID))
		case errors.Is(err, models.ErrUnknownStatus):
			return BadRequestResponse(c, "Unknown order status", map[string]interface{}{"status": updateData.Status})
		}
		return InternalServerErrorResponse(c, "Could not update order status", nil)
	}

	return SuccessResponse(c, fmt.Sprintf("Order %s status updated successfully to %s", orderID, to), viewOf(*order))
}
