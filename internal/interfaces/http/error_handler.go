package http

import (
	"errors"
	"runtime/debug"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/escrow-invoice-api/internal/application/dto"
	"github.com/jhoicas/escrow-invoice-api/internal/domain"
	"github.com/jhoicas/escrow-invoice-api/pkg/logger"
)

// statusByCode estado HTTP para cada código de error estable.
var statusByCode = map[domain.ErrorCode]int{
	domain.CodeInvalidInput:    fiber.StatusBadRequest,
	domain.CodeAmountMismatch:  fiber.StatusBadRequest,
	domain.CodeUnauthorized:    fiber.StatusUnauthorized,
	domain.CodeNotFound:        fiber.StatusNotFound,
	domain.CodeTooManyRequests: fiber.StatusTooManyRequests,
	domain.CodeTimeout:         fiber.StatusRequestTimeout,
	domain.CodeAIUnavailable:   fiber.StatusServiceUnavailable,
	domain.CodeInternal:        fiber.StatusInternalServerError,
}

// codeByStatus clasifica los *fiber.Error que genera el propio framework (body demasiado grande, 405...).
func codeByStatus(status int) domain.ErrorCode {
	switch {
	case status == fiber.StatusUnauthorized:
		return domain.CodeUnauthorized
	case status == fiber.StatusNotFound:
		return domain.CodeNotFound
	case status == fiber.StatusTooManyRequests:
		return domain.CodeTooManyRequests
	case status == fiber.StatusRequestTimeout:
		return domain.CodeTimeout
	case status >= 400 && status < 500:
		return domain.CodeInvalidInput
	default:
		return domain.CodeInternal
	}
}

// ErrorHandler manejador global de errores de Fiber.
//
//   - *domain.ValidationError → 400 con la lista completa de campos.
//   - *fiber.Error → estado del framework.
//   - resto → estado derivado del error de dominio; 500 si no se reconoce.
//
// En development la respuesta incluye el stack.
func ErrorHandler(log *logger.Logger, development bool) fiber.ErrorHandler {
	if log == nil {
		log = logger.Nop()
	}
	return func(c *fiber.Ctx, err error) error {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			log.Warn().
				Str("path", c.Path()).
				Str("method", c.Method()).
				Str("code", string(verr.Code)).
				Int("fields", len(verr.Fields)).
				Msg("petición rechazada por validación")
			return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationErrorResponse{
				Success:     false,
				Code:        string(verr.Code),
				UserMessage: domain.UserMessage(verr.Code),
				Errors:      verr.Fields,
			})
		}

		var (
			code    domain.ErrorCode
			status  int
			message string
		)
		var ferr *fiber.Error
		if errors.As(err, &ferr) {
			status = ferr.Code
			code = codeByStatus(status)
			message = ferr.Message
		} else {
			code = domain.CodeOf(err)
			status = statusByCode[code]
			message = err.Error()
		}

		ev := log.Warn()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		}
		ev.Err(err).
			Str("path", c.Path()).
			Str("method", c.Method()).
			Str("code", string(code)).
			Int("status", status).
			Msg("error en petición")

		if code == domain.CodeInternal && !development {
			message = "Internal server error"
		}
		resp := dto.ErrorEnvelope{
			Error: dto.ErrorBody{
				Code:        string(code),
				Message:     message,
				UserMessage: domain.UserMessage(code),
			},
		}
		if development {
			resp.Stack = string(debug.Stack())
		}
		return c.Status(status).JSON(resp)
	}
}

// NotFound responde a cualquier ruta no registrada. Debe montarse al final.
func NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.NotFoundResponse{
		Success: false,
		Error:   "Resource not found",
		Path:    c.OriginalURL(),
	})
}
