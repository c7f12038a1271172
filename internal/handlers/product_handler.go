package handlers

import (
	"errors"
	"log"

	"reseller/internal/middleware"
	"reseller/internal/models"
	"reseller/internal/pricing"
	"reseller/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// ProductHandler handles HTTP requests for the seller's catalog.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Patch("/:id/price", h.HandleUpdatePrice)
	productRoutes.Get("/:id/profit-preview", h.HandlePreviewProfit)
	productRoutes.Post("/:id/link", h.HandleGenerateLink)
}

// HandleGetProducts lists the catalog.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		log.Printf("Error getting all products: %v", err)
		return InternalServerErrorResponse(c, "Could not retrieve products", nil)
	}
	return SuccessResponse(c, "Products retrieved", products)
}

// HandleGetProductByID returns one product.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id := c.Params("id")
	product, err := h.service.GetProductByID(id)
	if err != nil {
		return h.productError(c, id, err)
	}
	return SuccessResponse(c, "Product retrieved", product)
}

// UpdatePriceRequest is the body of a price edit. The price may be sent as a
// JSON number or as the raw text the seller typed.
type UpdatePriceRequest struct {
	Price pricing.Input `json:"price"`
}

// HandleUpdatePrice saves the seller's new price for a product.
func (h *ProductHandler) HandleUpdatePrice(c *fiber.Ctx) error {
	id := c.Params("id")
	var req UpdatePriceRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing price update body for product %s: %v", id, err)
		return BadRequestResponse(c, "Invalid request body", map[string]interface{}{"body": err.Error()})
	}
	price, err := req.Price.Decimal()
	if err != nil {
		return priceError(c, err)
	}

	product, err := h.service.UpdatePrice(c.UserContext(), id, price)
	if err != nil {
		return h.productError(c, id, err)
	}
	return SuccessResponse(c, "Price updated", product)
}

// ProfitPreview is the answer of the profit preview endpoint.
type ProfitPreview struct {
	ProductID string          `json:"product_id"`
	Price     decimal.Decimal `json:"price"`
	Profit    decimal.Decimal `json:"profit"`
}

// HandlePreviewProfit shows the profit at a candidate price without saving it.
func (h *ProductHandler) HandlePreviewProfit(c *fiber.Ctx) error {
	id := c.Params("id")
	price, err := pricing.Parse(c.Query("price"))
	if err != nil {
		return priceError(c, err)
	}
	profit, err := h.service.PreviewProfit(id, price)
	if err != nil {
		return h.productError(c, id, err)
	}
	return SuccessResponse(c, "Profit preview", ProfitPreview{ProductID: id, Price: price, Profit: profit})
}

// HandleGenerateLink creates a referral link for the authenticated seller.
func (h *ProductHandler) HandleGenerateLink(c *fiber.Ctx) error {
	id := c.Params("id")
	link, err := h.service.GenerateLink(c.UserContext(), id, middleware.SellerID(c), middleware.SellerName(c))
	if err != nil {
		return h.productError(c, id, err)
	}
	return CreatedResponse(c, "Link generated", link)
}

func (h *ProductHandler) productError(c *fiber.Ctx, id string, err error) error {
	switch {
	case errors.Is(err, models.ErrProductNotFound):
		return NotFoundResponse(c, "product not found")
	case errors.Is(err, pricing.ErrInvalidPrice), errors.Is(err, pricing.ErrNegativePrice),
		errors.Is(err, pricing.ErrPriceOutOfRange):
		return priceError(c, err)
	}
	log.Printf("Error handling product %s: %v", id, err)
	return InternalServerErrorResponse(c, "Could not process product request", nil)
}

func priceError(c *fiber.Ctx, err error) error {
	return BadRequestResponse(c, "Invalid price", map[string]interface{}{"price": err.Error()})
}
