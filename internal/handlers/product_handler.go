package handlers

import (
	"fmt"

	"katalog/internal/middleware"
	"katalog/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

// RegisterRoutes registers the product routes. Mutating routes run auth first,
// then payload validation where a body is expected.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, auth, validate fiber.Handler) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	// Static segment registered before /:id so "stats" is never taken as an ID.
	productRoutes.Get("/stats", h.HandleGetProductStats)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Post("/", auth, validate, h.HandleCreateProduct)
	productRoutes.Put("/:id", auth, validate, h.HandleUpdateProduct)
	productRoutes.Delete("/:id", auth, h.HandleDeleteProduct)
}

// HandleGetProducts lists products, filtered by the category and search query
// parameters and paginated by page and limit.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	q := services.NewProductQuery(c.Query("category"), c.Query("search"), c.Query("page"), c.Query("limit"))
	page, err := h.service.ListProducts(q)
	if err != nil {
		return err
	}
	return c.JSON(page)
}

// HandleGetProductStats returns aggregate statistics over all products.
func (h *ProductHandler) HandleGetProductStats(c *fiber.Ctx) error {
	stats, err := h.service.GetProductStats()
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	product, err := h.service.GetProductByID(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(product)
}

// HandleCreateProduct creates a new product from a validated payload.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	input, ok := middleware.ProductInput(c)
	if !ok {
		return fmt.Errorf("product input missing from request context")
	}

	product, err := h.service.CreateProduct(input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct replaces every field of an existing product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	input, ok := middleware.ProductInput(c)
	if !ok {
		return fmt.Errorf("product input missing from request context")
	}

	product, err := h.service.UpdateProduct(c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(product)
}

// HandleDeleteProduct deletes a product by its ID.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	if err := h.service.DeleteProduct(c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
