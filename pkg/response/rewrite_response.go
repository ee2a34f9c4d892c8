// Package response writes the relay's JSON responses.
//
// Success bodies are written as-is; every failure is a single-field object
// {"error": "<message>"}.
package response

import (
	"github.com/gofiber/fiber/v2"
)

// ErrorBody is the only error shape the relay ever returns.
type ErrorBody struct {
	Error string `json:"error"`
}

// OK returns a 200 response with data as the whole body.
func OK(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(data)
}

// Error returns an error response.
func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(ErrorBody{Error: message})
}

// InternalError returns a 500 internal server error response.
func InternalError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}
