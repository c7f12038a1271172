package handlers

import (
	"errors"
	"log"
	"net/url"

	"reseller/internal/models"
	"reseller/internal/pricing"
	"reseller/internal/referral"
	"reseller/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// CheckoutHandler serves the public buy page a referral link opens.
type CheckoutHandler struct {
	checkout *services.CheckoutService
	orders   *services.OrderService
}

// NewCheckoutHandler creates a new CheckoutHandler. Submitted orders are
// handed to orders.
func NewCheckoutHandler(checkout *services.CheckoutService, orders *services.OrderService) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout, orders: orders}
}

// RegisterRoutes registers the buy routes with the Fiber app.
func (h *CheckoutHandler) RegisterRoutes(router fiber.Router) {
	buyRoutes := router.Group("/buy")
	buyRoutes.Get("/:product", h.HandleGetBuyPage)
	buyRoutes.Post("/:product", h.HandleSubmitOrder)
}

// BuyPage is what the buyer sees: the product at the seller's price.
type BuyPage struct {
	Product    *models.Product `json:"product"`
	SellerName string          `json:"seller_name"`
	Price      decimal.Decimal `json:"price"`
}

// HandleGetBuyPage renders the product behind a referral link.
func (h *CheckoutHandler) HandleGetBuyPage(c *fiber.Ctx) error {
	params, err := h.params(c)
	if err != nil {
		return paramError(c, err)
	}
	product, err := h.checkout.Product(params)
	if err != nil {
		return h.checkoutError(c, err)
	}
	return SuccessResponse(c, "Product retrieved", BuyPage{
		Product:    product,
		SellerName: params.SellerName,
		Price:      params.Price,
	})
}

// SubmitOrderRequest is the buyer's order form.
type SubmitOrderRequest struct {
	models.CustomerInfo
	Quantity int `json:"quantity"`
}

// OrderAck confirms a submitted order to the buyer.
type OrderAck struct {
	OrderID    string             `json:"order_id"`
	Status     models.OrderStatus `json:"status"`
	Quantity   int                `json:"quantity"`
	TotalPrice decimal.Decimal    `json:"total_price"`
}

// HandleSubmitOrder validates the form and places the order.
func (h *CheckoutHandler) HandleSubmitOrder(c *fiber.Ctx) error {
	params, err := h.params(c)
	if err != nil {
		return paramError(c, err)
	}

	var req SubmitOrderRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing order form: %v", err)
		return BadRequestResponse(c, models.ErrIncompleteCustomerInfo.Error(), nil)
	}

	order, err := h.checkout.Submit(params, req.CustomerInfo, req.Quantity)
	if err != nil {
		return h.checkoutError(c, err)
	}
	if err := h.orders.PlaceOrder(c.UserContext(), order); err != nil {
		log.Printf("Error placing checkout order %s: %v", order.ID, err)
		return InternalServerErrorResponse(c, "Could not place order", nil)
	}

	return CreatedResponse(c, "Order sent successfully", OrderAck{
		OrderID:    order.ID,
		Status:     order.Status,
		Quantity:   order.Quantity,
		TotalPrice: order.TotalPrice,
	})
}

func (h *CheckoutHandler) params(c *fiber.Ctx) (referral.BuyParams, error) {
	q, err := url.ParseQuery(string(c.Request().URI().QueryString()))
	if err != nil {
		return referral.BuyParams{}, &models.ParamError{Name: "query", Value: err.Error(), Reason: models.ParamMalformed}
	}
	productID, err := url.PathUnescape(c.Params("product"))
	if err != nil {
		productID = c.Params("product")
	}
	return referral.ParseBuyParams(productID, q)
}

func (h *CheckoutHandler) checkoutError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, models.ErrProductNotFound):
		return NotFoundResponse(c, "product not found")
	case errors.Is(err, models.ErrIncompleteCustomerInfo):
		return BadRequestResponse(c, err.Error(), nil)
	case errors.Is(err, models.ErrInvalidQuantity):
		return BadRequestResponse(c, err.Error(), map[string]interface{}{"field": "quantity"})
	case errors.Is(err, pricing.ErrPriceOutOfRange):
		return BadRequestResponse(c, "order total is out of range", map[string]interface{}{"field": "quantity"})
	}
	log.Printf("Checkout error: %v", err)
	return InternalServerErrorResponse(c, "Could not process order", nil)
}

func paramError(c *fiber.Ctx, err error) error {
	var pe *models.ParamError
	if errors.As(err, &pe) {
		return BadRequestResponse(c, pe.Error(), map[string]interface{}{
			"param":  pe.Name,
			"reason": pe.Reason,
		})
	}
	return BadRequestResponse(c, "Invalid link", nil)
}
