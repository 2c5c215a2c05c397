package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"teslo/internal/apperr"
	"teslo/internal/logger"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

// statusFor maps a failure kind to its HTTP status. Input conflicts are
// reported as bad requests.
func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindNotFound:
		return fiber.StatusNotFound
	case apperr.KindConflict, apperr.KindInvalid:
		return fiber.StatusBadRequest
	case apperr.KindUnauthorized:
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// errorResponse writes err in the standard error body. Unclassified errors
// are logged and answered with the generic internal message.
func errorResponse(c *fiber.Ctx, log *logger.Logger, err error) error {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		log.Error("unhandled error", "path", c.Path(), "error", err)
		appErr = apperr.Internal(err)
	}

	status := statusFor(appErr.Kind)
	return c.Status(status).JSON(fiber.Map{
		"message":    appErr.Message,
		"error":      utils.StatusMessage(status),
		"statusCode": status,
	})
}

func badRequest(c *fiber.Ctx, message string, err error) error {
	body := fiber.Map{
		"message":    message,
		"statusCode": fiber.StatusBadRequest,
	}
	if err != nil {
		body["error"] = err.Error()
	}
	return c.Status(fiber.StatusBadRequest).JSON(body)
}

// validate runs struct validation and writes a 400 listing every failed
// field. It reports whether the request may proceed.
func validate(c *fiber.Ctx, v *validator.Validate, input interface{}) (bool, error) {
	err := v.Struct(input)
	if err == nil {
		return true, nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return false, badRequest(c, "Validation failed", err)
	}
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message":    "Validation failed",
		"errors":     errorMessages,
		"statusCode": fiber.StatusBadRequest,
	})
}

// queryNonNegative reads an optional non-negative integer query parameter.
func queryNonNegative(c *fiber.Ctx, key string) (*int, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return nil, fmt.Errorf("%s must be a non-negative integer", key)
	}
	return &n, nil
}
