package handler

import (
	"github.com/gofiber/fiber/v2"
)

// response is the uniform JSON envelope for every API reply.
type response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ok writes a success envelope. A nil data yields a bare {"success":true}.
func ok(c *fiber.Ctx, data any) error {
	return c.JSON(response{Success: true, Data: data})
}

// writeError writes a failure envelope without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(response{Success: false, Error: message})
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "method not allowed")
		default:
			return writeError(c, status, "internal server error")
		}
	}
}
