package middleware

import (
	"log"
	"strings"
	"time"

	"reseller/internal/services"

	"github.com/gofiber/fiber/v2"
)

// Keys under which AuthRequired stores the seller identity in c.Locals.
const (
	LocalSellerID   = "seller_id"
	LocalSellerName = "seller_name"
	LocalUsername   = "username"
)

// AuthRequired is a Fiber middleware to check for a valid JWT token.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return unauthorized(c, "Authorization header is required")
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return unauthorized(c, "Authorization header format must be 'Bearer <token>'")
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			log.Printf("JWT validation failed: %v", err)
			return unauthorized(c, "Invalid or expired token")
		}

		c.Locals(LocalSellerID, claims.SellerID)
		c.Locals(LocalSellerName, claims.SellerName)
		c.Locals(LocalUsername, claims.Username)
		return c.Next()
	}
}

// SellerID returns the authenticated seller's id, or "" outside AuthRequired.
func SellerID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalSellerID).(string)
	return id
}

// SellerName returns the authenticated seller's display name.
func SellerName(c *fiber.Ctx) string {
	name, _ := c.Locals(LocalSellerName).(string)
	return name
}

// unauthorized writes the 401 envelope. It mirrors handlers.UnauthorizedResponse
// without importing the handlers package.
func unauthorized(c *fiber.Ctx, message string) error {
	requestID, _ := c.Locals("requestid").(string)
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"success": false,
		"message": message,
		"error": fiber.Map{
			"code":    "UNAUTHORIZED",
			"message": message,
		},
		"timestamp":  time.Now(),
		"request_id": requestID,
	})
}
