package api

import (
	"errors"

	"go-chat/pkg/apperrors"

	"github.com/gofiber/fiber/v2"
)

// Response is the uniform JSON envelope for all API responses.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// Success writes a successful envelope with the given payload.
func Success(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(Response{Success: true, Data: data})
}

// SuccessMessage writes a successful envelope carrying only a message.
func SuccessMessage(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(Response{Success: true, Message: message})
}

// Fail writes a failed envelope with the given status and message.
func Fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(Response{Success: false, Message: message})
}

// FromError maps a service error onto the envelope using the failure
// taxonomy. Anything outside the taxonomy is an internal error and the
// detail stays out of the response body.
func FromError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return Fail(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, apperrors.ErrUnauthorized):
		return Fail(c, fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, apperrors.ErrForbidden):
		return Fail(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, apperrors.ErrNotFound):
		return Fail(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, apperrors.ErrConflict):
		return Fail(c, fiber.StatusConflict, err.Error())
	default:
		return Fail(c, fiber.StatusInternalServerError, "Internal server error")
	}
}
