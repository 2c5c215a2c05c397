package handlers

import (
	"teslo/internal/logger"
	"teslo/internal/services"

	"github.com/gofiber/fiber/v2"
)

// SeedHandler exposes the catalog reset.
type SeedHandler struct {
	service *services.SeedService
	log     *logger.Logger
}

func NewSeedHandler(service *services.SeedService, log *logger.Logger) *SeedHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &SeedHandler{service: service, log: log}
}

func (h *SeedHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	router.Get("/seed", authRequired, h.HandleRunSeed)
}

// HandleRunSeed wipes the catalog and loads the seed products.
func (h *SeedHandler) HandleRunSeed(c *fiber.Ctx) error {
	n, err := h.service.RunSeed(c.UserContext())
	if err != nil {
		return errorResponse(c, h.log, err)
	}
	return c.JSON(fiber.Map{
		"message":  "SEED EXECUTED",
		"inserted": n,
	})
}
