package domain

import (
	"context"
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrInvalidInput    = errors.New("entrada inválida")
	ErrAmountMismatch  = errors.New("el total no coincide con la suma de las líneas")
	ErrUnauthorized    = errors.New("no autorizado")
	ErrNotFound        = errors.New("recurso no encontrado")
	ErrTooManyRequests = errors.New("demasiadas peticiones")
	ErrAIUnavailable   = errors.New("servicio de IA no configurado")
)

// ErrorCode código estable que viaja en las respuestas de error.
type ErrorCode string

const (
	CodeInvalidInput    ErrorCode = "INVALID_INPUT"
	CodeAmountMismatch  ErrorCode = "AMOUNT_MISMATCH"
	CodeUnauthorized    ErrorCode = "UNAUTHORIZED"
	CodeNotFound        ErrorCode = "NOT_FOUND"
	CodeTooManyRequests ErrorCode = "TOO_MANY_REQUESTS"
	CodeTimeout         ErrorCode = "TIMEOUT"
	CodeAIUnavailable   ErrorCode = "AI_UNAVAILABLE"
	CodeInternal        ErrorCode = "INTERNAL_SERVER_ERROR"
)

const fallbackUserMessage = "Something went wrong. Please try again or contact support."

// userMessages se construye una sola vez y no se modifica; solo se lee vía UserMessage.
var userMessages = map[ErrorCode]string{
	CodeInvalidInput:    "Please check the required fields and try again.",
	CodeAmountMismatch:  "The invoice total doesn't match the line items. Please verify your calculations.",
	CodeUnauthorized:    "You don't have permission to perform this action.",
	CodeNotFound:        "The requested resource was not found.",
	CodeTooManyRequests: "You're sending requests too quickly. Please wait a moment and try again.",
}

// UserMessage devuelve el texto para el usuario final asociado al código.
func UserMessage(code ErrorCode) string {
	if msg, ok := userMessages[code]; ok {
		return msg
	}
	return fallbackUserMessage
}

// CodeOf clasifica un error en su código estable.
func CodeOf(err error) ErrorCode {
	var verr *ValidationError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &verr):
		return verr.Code
	case errors.Is(err, ErrAmountMismatch):
		return CodeAmountMismatch
	case errors.Is(err, ErrInvalidInput):
		return CodeInvalidInput
	case errors.Is(err, ErrUnauthorized):
		return CodeUnauthorized
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrTooManyRequests):
		return CodeTooManyRequests
	case errors.Is(err, ErrAIUnavailable):
		return CodeAIUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return CodeTimeout
	default:
		return CodeInternal
	}
}

// FieldViolation un error de validación asociado a un campo de la petición.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError agrupa todas las violaciones de una petición.
// Code es AMOUNT_MISMATCH si alguna violación es de descuadre de montos, INVALID_INPUT si no.
type ValidationError struct {
	Code   ErrorCode
	Fields []FieldViolation
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s: %s", e.Code, e.Fields[0].Field, e.Fields[0].Message)
}

// Unwrap permite errors.Is contra ErrAmountMismatch / ErrInvalidInput.
func (e *ValidationError) Unwrap() error {
	if e.Code == CodeAmountMismatch {
		return ErrAmountMismatch
	}
	return ErrInvalidInput
}
