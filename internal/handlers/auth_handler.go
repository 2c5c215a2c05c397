package handlers

import (
	"teslo/internal/apperr"
	"teslo/internal/logger"
	"teslo/internal/middleware"
	"teslo/internal/models"
	"teslo/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
	log         *logger.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, log *logger.Logger) *AuthHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
		log:         log,
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Get("/check-status", authRequired, h.HandleCheckStatus)
}

// HandleRegister handles new user registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var input models.RegisterUserInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	if ok, err := validate(c, h.validate, input); !ok {
		return err
	}

	resp, err := h.authService.RegisterUser(c.UserContext(), input)
	if err != nil {
		return errorResponse(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// HandleLogin handles user login and issues a JWT token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var input models.LoginUserInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	if ok, err := validate(c, h.validate, input); !ok {
		return err
	}

	resp, err := h.authService.LoginUser(c.UserContext(), input)
	if err != nil {
		h.log.Debug("login rejected", "email", input.Email, "error", err)
		return errorResponse(c, h.log, err)
	}
	return c.JSON(resp)
}

// HandleCheckStatus re-issues a token for the authenticated user.
func (h *AuthHandler) HandleCheckStatus(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return errorResponse(c, h.log, apperr.Unauthorized("User not found in request"))
	}

	resp, err := h.authService.CheckAuthStatus(user)
	if err != nil {
		return errorResponse(c, h.log, err)
	}
	return c.JSON(resp)
}
