package handlers

import (
	"errors"
	"log"

	"katalog/internal/apperrors"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler translates any error returned by a handler or middleware into
// a uniform JSON response. It is installed as the Fiber app's ErrorHandler, so
// every failure passes through it exactly once.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var validationErr *apperrors.ValidationError
	var fiberErr *fiber.Error

	switch {
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErr.Errors,
		})
	case errors.Is(err, apperrors.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Product not found",
		})
	case errors.Is(err, apperrors.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
		})
	case errors.As(err, &fiberErr) && fiberErr.Code != fiber.StatusInternalServerError:
		// Routing failures such as unknown paths or methods.
		return c.Status(fiberErr.Code).JSON(fiber.Map{
			"message": fiberErr.Message,
		})
	}

	log.Printf("Internal error on %s %s: %+v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Internal server error",
	})
}
