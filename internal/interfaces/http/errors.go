package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/Loan-api/internal/application/dto"
	"github.com/jhoicas/Loan-api/internal/domain"
)

// Códigos de error expuestos en dto.ErrorResponse.
const (
	CodeInvalidRequest    = "INVALID_REQUEST"
	CodeInsufficientLimit = "INSUFFICIENT_LIMIT"
	CodeNotFound          = "NOT_FOUND"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeForbidden         = "FORBIDDEN"
	CodeConflict          = "CONFLICT"
	CodeInternal          = "INTERNAL"
)

// writeError traduce errores de dominio a status + ErrorResponse. Los errores de cliente se
// registran como warn con su mensaje; los de servidor como error y sin exponer el detalle.
func writeError(c *fiber.Ctx, err error) error {
	status, code := statusFor(err)
	message := err.Error()
	event := log.Warn()
	if status >= fiber.StatusInternalServerError {
		event = log.Error()
		message = "error interno"
	}
	event.Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Int("status", status).
		Str("request_id", requestID(c)).
		Msg("petición rechazada")
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: message})
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		return fiber.StatusBadRequest, CodeInvalidRequest
	case errors.Is(err, domain.ErrInsufficientLimit):
		return fiber.StatusUnprocessableEntity, CodeInsufficientLimit
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, CodeNotFound
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, CodeUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, CodeForbidden
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, CodeConflict
	default:
		return fiber.StatusInternalServerError, CodeInternal
	}
}

// ErrorHandler para fiber.Config: errores no manejados por los handlers (404 de ruta, panics recuperados).
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := CodeInternal
		switch fe.Code {
		case fiber.StatusNotFound:
			code = CodeNotFound
		case fiber.StatusBadRequest, fiber.StatusMethodNotAllowed, fiber.StatusUnprocessableEntity:
			code = CodeInvalidRequest
		}
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: code, Message: fe.Message})
	}
	return writeError(c, err)
}
