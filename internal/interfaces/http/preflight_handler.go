package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/escrow-invoice-api/internal/application/billing"
	"github.com/jhoicas/escrow-invoice-api/internal/application/dto"
)

// PreflightHandler pre-valida acciones de escrow que luego firma la wallet.
type PreflightHandler struct {
	uc *billing.PreflightUseCase
}

// NewPreflightHandler construye el handler.
func NewPreflightHandler(uc *billing.PreflightUseCase) *PreflightHandler {
	return &PreflightHandler{uc: uc}
}

// ReleaseMilestone POST /api/invoices/:id/milestones/release
func (h *PreflightHandler) ReleaseMilestone(c *fiber.Ctx) error {
	var in dto.ReleaseMilestoneRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "cuerpo de la petición inválido")
	}
	in.InvoiceID = c.Params("id")
	out, err := h.uc.ReleaseMilestone(&in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// RaiseDispute POST /api/invoices/:id/disputes
func (h *PreflightHandler) RaiseDispute(c *fiber.Ctx) error {
	var in dto.RaiseDisputeRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "cuerpo de la petición inválido")
	}
	in.InvoiceID = c.Params("id")
	out, err := h.uc.RaiseDispute(&in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// ResolveDispute POST /api/disputes/:id/resolve
func (h *PreflightHandler) ResolveDispute(c *fiber.Ctx) error {
	var in dto.ResolveDisputeRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "cuerpo de la petición inválido")
	}
	in.DisputeID = c.Params("id")
	out, err := h.uc.ResolveDispute(&in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// CheckWallet GET /api/wallets/:wallet/check
func (h *PreflightHandler) CheckWallet(c *fiber.Ctx) error {
	out, err := h.uc.CheckWallet(c.Params("wallet"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}
