package handlers

import (
	"errors"

	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"

	"topsongs/database"
	"topsongs/middleware"
)

// Status maps err to an HTTP status and a message safe to show the client.
// Database details and credentials never reach the response.
func Status(err error) (int, string) {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code, fe.Message
	case database.IsSecretUnreadable(err):
		return fiber.StatusInternalServerError, "database credentials unavailable"
	case database.IsConnect(err):
		return fiber.StatusServiceUnavailable, "database unavailable"
	case database.IsQuery(err):
		return fiber.StatusInternalServerError, "failed to load songs"
	default:
		return fiber.StatusInternalServerError, "internal server error"
	}
}

// ErrorHandler returns the application's [fiber.ErrorHandler]. Server errors
// are logged in full; client errors are only answered.
func ErrorHandler(logger *log.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code, msg := Status(err)
		if code >= fiber.StatusInternalServerError {
			logger.Error("request failed",
				"request_id", middleware.GetRequestID(c),
				"method", c.Method(),
				"path", c.Path(),
				"status", code,
				"err", err,
			)
		}

		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return c.Status(code).SendString(msg)
	}
}
