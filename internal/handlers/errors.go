package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/example/epkadmin/internal/services"
	"github.com/example/epkadmin/internal/store"
)

// ErrorHandler renders every error returned by a handler or middleware as
// {success:false, error:true, message}.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, message := statusFor(err)
		if status >= fiber.StatusInternalServerError {
			log.Error("request failed",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Any("request_id", c.Locals("requestid")),
				zap.Error(err),
			)
		}
		return c.Status(status).JSON(fiber.Map{
			"success": false,
			"error":   true,
			"message": message,
		})
	}
}

func statusFor(err error) (int, string) {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code, fe.Message
	}

	var se *services.Error
	if errors.As(err, &se) {
		return kindStatus(se.Kind), se.Message
	}

	switch {
	case errors.Is(err, store.ErrNotFound):
		return fiber.StatusNotFound, "Not found"
	case errors.Is(err, store.ErrDuplicate):
		return fiber.StatusBadRequest, "Duplicate value"
	case errors.Is(err, store.ErrInvalidUpdate):
		return fiber.StatusBadRequest, err.Error()
	}
	return fiber.StatusInternalServerError, "Internal server error"
}

func kindStatus(kind error) int {
	switch kind {
	case services.ErrValidation, services.ErrConflict:
		return fiber.StatusBadRequest
	case services.ErrNotFound:
		return fiber.StatusNotFound
	case services.ErrUnauthenticated:
		return fiber.StatusUnauthorized
	case services.ErrForbidden:
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}
