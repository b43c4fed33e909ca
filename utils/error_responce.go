package utils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	CodeInvalidInput           = "INVALID_INPUT"
	CodeUnauthorized           = "UNAUTHORIZED"
	CodeForbidden              = "FORBIDDEN"
	CodeNotFound               = "NOT_FOUND"
	CodeEmailExists            = "EMAIL_EXISTS"
	CodeInvalidCredentials     = "INVALID_CREDENTIALS"
	CodeInvalidCurrentPassword = "INVALID_CURRENT_PASSWORD"
	CodeMissingProviderProfile = "MISSING_PROVIDER_PROFILE"
	CodeSlotTaken              = "SLOT_TAKEN"
	CodeInternal               = "INTERNAL_ERROR"
)

// ErrorResponse is a struct for error response
type ErrorResponse struct {
	Error  string            `json:"error"`
	Code   string            `json:"code,omitempty"`
	Errors map[string]string `json:"errors,omitempty"`
}

// Respond writes an ErrorResponse with the given status.
func Respond(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(ErrorResponse{Error: message, Code: code})
}

// ErrorHandler turns errors returned by handlers into JSON responses.
// Anything it does not recognise becomes a 500 with a generic message.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var verr *ValidationError
		var ferr *fiber.Error

		switch {
		case errors.As(err, &verr):
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Error:  verr.Message,
				Code:   CodeInvalidInput,
				Errors: verr.Fields,
			})
		case errors.Is(err, ErrNotFound):
			return Respond(c, fiber.StatusNotFound, CodeNotFound, "Resource not found")
		case errors.Is(err, ErrUnauthenticated):
			return Respond(c, fiber.StatusUnauthorized, CodeUnauthorized, "Authentication required")
		case errors.Is(err, ErrForbidden):
			return Respond(c, fiber.StatusForbidden, CodeForbidden, "Insufficient permissions")
		case errors.Is(err, ErrDuplicateEmail):
			return Respond(c, fiber.StatusBadRequest, CodeEmailExists, "User with this email already exists")
		case errors.Is(err, ErrInvalidCredentials):
			return Respond(c, fiber.StatusUnauthorized, CodeInvalidCredentials, "Invalid email or password")
		case errors.Is(err, ErrMissingProviderProfile):
			return Respond(c, fiber.StatusBadRequest, CodeMissingProviderProfile, "Provider profile not found")
		case errors.Is(err, ErrSlotTaken):
			return Respond(c, fiber.StatusConflict, CodeSlotTaken, "Provider already has an appointment at this time")
		case errors.As(err, &ferr):
			return c.Status(ferr.Code).JSON(ErrorResponse{Error: ferr.Message})
		}

		log.Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return Respond(c, fiber.StatusInternalServerError, CodeInternal, "Internal server error")
	}
}
