package middleware

import (
	"katalog/internal/apperrors"
	"katalog/internal/models"
	"katalog/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const productInputKey = "product_input"

// ValidateProduct parses the request body with the app's JSON decoder and
// validates it as a full product. An empty body is validated as an empty object.
// On success the typed input is stored in the context for the next handler.
func ValidateProduct(v *validation.ProductValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := map[string]interface{}{}
		if body := c.Body(); len(body) > 0 {
			if err := c.App().Config().JSONDecoder(body, &raw); err != nil {
				return apperrors.NewValidationError(map[string]string{
					"body": "Request body must be a JSON object",
				})
			}
		}

		input, err := v.Validate(raw)
		if err != nil {
			return err
		}

		c.Locals(productInputKey, input)
		return c.Next()
	}
}

// ProductInput returns the input stored by ValidateProduct.
func ProductInput(c *fiber.Ctx) (models.ProductInput, bool) {
	input, ok := c.Locals(productInputKey).(models.ProductInput)
	return input, ok
}
