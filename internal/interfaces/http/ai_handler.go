package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/escrow-invoice-api/internal/application/dto"
	"github.com/jhoicas/escrow-invoice-api/internal/application/usecase"
	"github.com/jhoicas/escrow-invoice-api/internal/domain"
)

// AIHandler maneja la interpretación de facturas en texto libre asistida por IA.
type AIHandler struct {
	uc *usecase.AIUseCase
}

// NewAIHandler construye el handler. uc puede ser nil si no hay proveedor configurado.
func NewAIHandler(uc *usecase.AIUseCase) *AIHandler {
	return &AIHandler{uc: uc}
}

// ParseInvoice godoc
// @Summary      Interpretar una factura escrita en lenguaje natural
// @Description  Devuelve la factura lista para el editor, sus errores de validación y los totales.
// @Tags         ai
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ParseInvoiceRequest  true  "Texto libre (20 a 10000 caracteres)"
// @Success      200   {object}  dto.ParseInvoiceResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Failure      408   {object}  dto.ErrorEnvelope
// @Failure      503   {object}  dto.ErrorEnvelope
// @Router       /api/ai/parse-invoice [post]
func (h *AIHandler) ParseInvoice(c *fiber.Ctx) error {
	if h.uc == nil {
		return domain.ErrAIUnavailable
	}
	var req dto.ParseInvoiceRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "cuerpo de la petición inválido")
	}
	result, err := h.uc.ParseInvoice(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(result)
}
