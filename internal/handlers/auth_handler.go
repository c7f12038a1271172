package handlers

import (
	"errors"
	"fmt"
	"log"

	"reseller/internal/models"
	"reseller/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for seller authentication.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/login", h.HandleLogin)
}

// HandleRegister handles new seller registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var seller models.Seller
	if err := c.BodyParser(&seller); err != nil {
		log.Printf("Error parsing register request body: %v", err)
		return BadRequestResponse(c, "Invalid request body", map[string]interface{}{"body": err.Error()})
	}
	seller.ID = ""

	if err := h.validate.Struct(seller); err != nil {
		return BadRequestResponse(c, "Validation failed", validationDetails(err))
	}

	if err := h.authService.RegisterSeller(&seller); err != nil {
		log.Printf("Error registering seller: %v", err)
		if errors.Is(err, services.ErrSellerExists) {
			return ConflictResponse(c, "Registration failed", map[string]interface{}{"reason": err.Error()})
		}
		return InternalServerErrorResponse(c, "Could not register seller", nil)
	}

	// For security, do not return the password hash
	seller.Password = ""
	return CreatedResponse(c, "Seller registered successfully", seller)
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin handles seller login and issues a JWT token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing login request body: %v", err)
		return BadRequestResponse(c, "Invalid request body", map[string]interface{}{"body": err.Error()})
	}

	if err := h.validate.Struct(req); err != nil {
		return BadRequestResponse(c, "Validation failed", validationDetails(err))
	}

	token, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		log.Printf("Error during login for seller %s: %v", req.Username, err)
		return UnauthorizedResponse(c, "Authentication failed")
	}

	return SuccessResponse(c, "Login successful", fiber.Map{"token": token})
}

// validationDetails turns validator errors into a field -> message map.
func validationDetails(err error) map[string]interface{} {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return map[string]interface{}{"error": err.Error()}
	}
	details := make(map[string]interface{}, len(validationErrors))
	for _, e := range validationErrors {
		details[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return details
}
