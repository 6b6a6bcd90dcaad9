package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/escrow-invoice-api/internal/application/billing"
	"github.com/jhoicas/escrow-invoice-api/internal/application/dto"
)

// InvoiceHandler maneja el editor de facturas y la preparación de deals de escrow.
type InvoiceHandler struct {
	editor *billing.EditorUseCase
	deal   *billing.DealUseCase
	pdf    *billing.PDFUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(editor *billing.EditorUseCase, deal *billing.DealUseCase, pdf *billing.PDFUseCase) *InvoiceHandler {
	return &InvoiceHandler{editor: editor, deal: deal, pdf: pdf}
}

// CreateDeal godoc
// @Summary      Preparar un deal de escrow
// @Description  Valida la factura (direcciones Stacks, líneas, total = suma de líneas) y devuelve
//               la vista previa lista para que la wallet firme la transacción.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDealRequest  true  "Factura del deal"
// @Success      200   {object}  dto.DealPreview
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Router       /api/invoice/create-deal [post]
func (h *InvoiceHandler) CreateDeal(c *fiber.Ctx) error {
	var in dto.CreateDealRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "cuerpo de la petición inválido")
	}
	preview, err := h.deal.PrepareDeal(c.UserContext(), &in)
	if err != nil {
		return err
	}
	return c.JSON(preview)
}

// Totals calcula subtotal, impuesto, descuento y total de un conjunto de líneas.
// POST /api/invoices/totals
func (h *InvoiceHandler) Totals(c *fiber.Ctx) error {
	var in dto.TotalsRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "cuerpo de la petición inválido")
	}
	return c.JSON(h.editor.Totals(in))
}

// Validate aplica el validador del editor. Siempre responde 200; el resultado va en "valid".
// POST /api/invoices/validate
func (h *InvoiceHandler) Validate(c *fiber.Ctx) error {
	var in dto.InvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "cuerpo de la petición inválido")
	}
	return c.JSON(h.editor.Validate(&in.Invoice))
}

// PreviewPDF genera la vista previa en PDF de una factura válida.
// POST /api/invoices/preview.pdf
func (h *InvoiceHandler) PreviewPDF(c *fiber.Ctx) error {
	var in dto.InvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "cuerpo de la petición inválido")
	}
	pdfBytes, filename, err := h.pdf.PreviewPDF(c.UserContext(), &in.Invoice)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s"`, filename))
	return c.Send(pdfBytes)
}
