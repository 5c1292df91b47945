package app

import (
	"log"
	"time"

	"katalog/internal/config"
	"katalog/internal/handlers"
	"katalog/internal/middleware"
	"katalog/internal/services"
	"katalog/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

const welcomeMessage = "Welcome to the Product API"

// NewApp builds the Fiber app: request logging first, then panic recovery, then
// the routes. Every error ends up in handlers.ErrorHandler.
func NewApp(cfg *config.Config, productService *services.ProductService) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler,
		// Route params and bodies are stored in the repository, so they must
		// not alias fasthttp's reusable buffers.
		Immutable: true,
	})

	// --- Middleware ---
	app.Use(middleware.RequestLogger())
	// Access log with status and latency, sharing the standard logger's writer
	app.Use(logger.New(logger.Config{Output: log.Writer()}))
	app.Use(recover.New())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(welcomeMessage)
	})

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- API Routes ---
	api := app.Group("/api")
	productHandler := handlers.NewProductHandler(productService)
	productHandler.RegisterRoutes(
		api,
		middleware.APIKeyRequired(cfg.APIKeyHeader, cfg.APIKey),
		middleware.ValidateProduct(validation.NewProductValidator()),
	)

	return app
}
