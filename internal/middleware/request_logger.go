package middleware

import (
	"log"

	"github.com/gofiber/fiber/v2"
)

// RequestLogger logs the method and path of every request as soon as it
// arrives, before authentication or validation run. The timestamp comes from
// the standard logger's prefix.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		log.Printf("%s %s", c.Method(), c.Path())
		return c.Next()
	}
}
