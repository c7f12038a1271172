package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// APIResponse is the envelope every endpoint answers with.
type APIResponse struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Error     *APIError   `json:"error,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	RequestID string      `json:"request_id"`
}

type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func SuccessResponse(c *fiber.Ctx, message string, data interface{}) error {
	return respond(c, fiber.StatusOK, message, data)
}

func CreatedResponse(c *fiber.Ctx, message string, data interface{}) error {
	return respond(c, fiber.StatusCreated, message, data)
}

func BadRequestResponse(c *fiber.Ctx, message string, details map[string]interface{}) error {
	return errorResponse(c, fiber.StatusBadRequest, "BAD_REQUEST", message, details)
}

func UnauthorizedResponse(c *fiber.Ctx, message string) error {
	return errorResponse(c, fiber.StatusUnauthorized, "UNAUTHORIZED", message, nil)
}

func NotFoundResponse(c *fiber.Ctx, message string) error {
	return errorResponse(c, fiber.StatusNotFound, "NOT_FOUND", message, nil)
}

func ConflictResponse(c *fiber.Ctx, message string, details map[string]interface{}) error {
	return errorResponse(c, fiber.StatusConflict, "CONFLICT", message, details)
}

func NotImplementedResponse(c *fiber.Ctx, message string, details map[string]interface{}) error {
	return errorResponse(c, fiber.StatusNotImplemented, "COMING_SOON", message, details)
}

func InternalServerErrorResponse(c *fiber.Ctx, message string, details map[string]interface{}) error {
	return errorResponse(c, fiber.StatusInternalServerError, "INTERNAL_SERVER_ERROR", message, details)
}

// ErrorHandler is the fiber error handler. It keeps errors that escape a
// handler (unknown routes, panics caught by recover) in the same envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	switch code {
	case fiber.StatusNotFound:
		return NotFoundResponse(c, err.Error())
	case fiber.StatusInternalServerError:
		return InternalServerErrorResponse(c, "Internal server error", nil)
	default:
		return errorResponse(c, code, "ERROR", err.Error(), nil)
	}
}

func respond(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(APIResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
		RequestID: getRequestID(c),
	})
}

func errorResponse(c *fiber.Ctx, status int, code, message string, details map[string]interface{}) error {
	return c.Status(status).JSON(APIResponse{
		Success: false,
		Message: message,
		Error: &APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
		Timestamp: time.Now(),
		RequestID: getRequestID(c),
	})
}

// getRequestID prefers the id set by the requestid middleware, then the
// incoming header, and mints one as a last resort.
func getRequestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok && id != "" {
		return id
	}
	requestID := c.Get(fiber.HeaderXRequestID)
	if requestID == "" {
		requestID = uuid.New().String()
		c.Set(fiber.HeaderXRequestID, requestID)
	}
	return requestID
}
