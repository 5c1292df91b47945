package middleware

import (
	"katalog/internal/apperrors"

	"github.com/gofiber/fiber/v2"
)

// APIKeyRequired is a Fiber middleware that rejects requests whose header does
// not carry exactly the shared secret.
func APIKeyRequired(header, secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Get(header)
		if key == "" || key != secret {
			return apperrors.ErrUnauthorized
		}

		// Continue to the next handler
		return c.Next()
	}
}
