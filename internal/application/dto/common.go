package dto

import "github.com/jhoicas/escrow-invoice-api/internal/domain"

// ErrorResponse cuerpo de error HTTP simple (validación de parámetros, body inválido).
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorBody detalle del error en la respuesta estructurada.
type ErrorBody struct {
	Code        string `json:"code"`
	Message     string `json:"message"`
	UserMessage string `json:"userMessage"`
	Details     any    `json:"details"`
}

// ErrorEnvelope respuesta del manejador global de errores.
// Stack solo se incluye en development.
type ErrorEnvelope struct {
	Error ErrorBody `json:"error"`
	Stack string    `json:"stack,omitempty"`
}

// ValidationErrorResponse respuesta 400 con todas las violaciones de la petición.
type ValidationErrorResponse struct {
	Success     bool                    `json:"success"`
	Code        string                  `json:"code"`
	UserMessage string                  `json:"userMessage"`
	Errors      []domain.FieldViolation `json:"errors"`
}

// NotFoundResponse respuesta para rutas inexistentes.
type NotFoundResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Path    string `json:"path"`
}
