package handlers

import (
	"teslo/internal/logger"
	"teslo/internal/services"

	"github.com/gofiber/fiber/v2"
)

// FileHandler handles product image uploads and downloads.
type FileHandler struct {
	service *services.FileService
	log     *logger.Logger
}

func NewFileHandler(service *services.FileService, log *logger.Logger) *FileHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &FileHandler{service: service, log: log}
}

func (h *FileHandler) RegisterRoutes(router fiber.Router) {
	fileRoutes := router.Group("/files")
	fileRoutes.Post("/product", h.HandleUploadProductImage)
	fileRoutes.Get("/product/:imageName", h.HandleGetProductImage)
}

// HandleUploadProductImage stores the multipart field "file" and returns its public URL.
func (h *FileHandler) HandleUploadProductImage(c *fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "Make sure the file is an image", nil)
	}

	file, err := header.Open()
	if err != nil {
		return badRequest(c, "Make sure the file is an image", err)
	}
	defer file.Close()

	secureURL, err := h.service.UploadProductImage(c.UserContext(), header.Header.Get(fiber.HeaderContentType), file)
	if err != nil {
		return errorResponse(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"secureUrl": secureURL,
	})
}

// HandleGetProductImage streams a stored product image.
func (h *FileHandler) HandleGetProductImage(c *fiber.Ctx) error {
	image, err := h.service.OpenProductImage(c.UserContext(), c.Params("imageName"))
	if err != nil {
		return errorResponse(c, h.log, err)
	}

	c.Set(fiber.HeaderContentType, image.ContentType)
	return c.Send(image.Data)
}
