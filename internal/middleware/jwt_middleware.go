package middleware

import (
	"strings"

	"teslo/internal/apperr"
	"teslo/internal/models"
	"teslo/internal/services"

	"github.com/gofiber/fiber/v2"
)

const userLocalsKey = "user"

// AuthRequired is a Fiber middleware that resolves the bearer token to an
// active user and stores it in the request locals.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return unauthorized(c, "Authorization header is required")
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return unauthorized(c, "Authorization header format must be 'Bearer <token>'")
		}

		user, err := authService.Authenticate(c.UserContext(), parts[1])
		if err != nil {
			if apperr.Is(err, apperr.KindUnauthorized) {
				return unauthorized(c, err.Error())
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message":    apperr.InternalMessage,
				"statusCode": fiber.StatusInternalServerError,
			})
		}

		c.Locals(userLocalsKey, user)
		c.Locals("user_id", user.ID)
		return c.Next()
	}
}

// CurrentUser returns the user stored by AuthRequired.
func CurrentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(userLocalsKey).(*models.User)
	return user, ok && user != nil
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"message":    message,
		"error":      "Unauthorized",
		"statusCode": fiber.StatusUnauthorized,
	})
}
