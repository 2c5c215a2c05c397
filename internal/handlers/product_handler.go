package handlers

import (
	"teslo/internal/logger"
	"teslo/internal/lookup"
	"teslo/internal/models"
	"teslo/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for the product catalog.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
	log      *logger.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, log *logger.Logger) *ProductHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
		log:      log,
	}
}

// RegisterRoutes registers the product routes. Writes go through authRequired.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:term", h.HandleGetProduct)
	productRoutes.Post("/", authRequired, h.HandleCreateProduct)
	productRoutes.Patch("/:id", authRequired, h.HandleUpdateProduct)
	productRoutes.Delete("/:id", authRequired, h.HandleDeleteProduct)
}

// HandleCreateProduct creates a product with its images.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var input models.CreateProductInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	if ok, err := validate(c, h.validate, input); !ok {
		return err
	}

	product, err := h.service.Create(c.UserContext(), input)
	if err != nil {
		return errorResponse(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleGetProducts lists one page of products.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	limit, err := queryNonNegative(c, "limit")
	if err != nil {
		return badRequest(c, err.Error(), nil)
	}
	offset, err := queryNonNegative(c, "offset")
	if err != nil {
		return badRequest(c, err.Error(), nil)
	}

	products, err := h.service.FindAll(c.UserContext(), models.Pagination{Limit: limit, Offset: offset})
	if err != nil {
		return errorResponse(c, h.log, err)
	}
	return c.JSON(products)
}

// HandleGetProduct resolves a product by id, title or slug.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	product, err := h.service.FindOnePlain(c.UserContext(), c.Params("term"))
	if err != nil {
		return errorResponse(c, h.log, err)
	}
	return c.JSON(product)
}

// HandleUpdateProduct applies a partial update, optionally replacing the images.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	if !lookup.IsIdentifier(id) {
		return badRequest(c, "Validation failed (uuid is expected)", nil)
	}

	var input models.UpdateProductInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	if ok, err := validate(c, h.validate, input); !ok {
		return err
	}

	product, err := h.service.Update(c.UserContext(), id, input)
	if err != nil {
		return errorResponse(c, h.log, err)
	}
	return c.JSON(product)
}

// HandleDeleteProduct removes a product and its images.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	if !lookup.IsIdentifier(id) {
		return badRequest(c, "Validation failed (uuid is expected)", nil)
	}

	if err := h.service.Remove(c.UserContext(), id); err != nil {
		return errorResponse(c, h.log, err)
	}
	return c.JSON(fiber.Map{
		"message": "Product deleted successfully",
	})
}
