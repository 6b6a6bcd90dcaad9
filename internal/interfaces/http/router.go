package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/escrow-invoice-api/internal/application/billing"
	"github.com/jhoicas/escrow-invoice-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	EditorUC        *billing.EditorUseCase
	DealUC          *billing.DealUseCase
	PDFUC           *billing.PDFUseCase
	PreflightUC     *billing.PreflightUseCase
	AIUC            *usecase.AIUseCase // nil → /api/ai responde 503
	RateLimitMax    int                // 0 desactiva el limitador
	RateLimitWindow time.Duration
}

// Router registra las rutas de la API y el manejador de rutas inexistentes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	if deps.RateLimitMax > 0 {
		api.Use(RateLimiter(deps.RateLimitMax, deps.RateLimitWindow))
	}

	invoiceHandler := NewInvoiceHandler(deps.EditorUC, deps.DealUC, deps.PDFUC)
	api.Post("/invoice/create-deal", invoiceHandler.CreateDeal)

	// Editor
	invoices := api.Group("/invoices")
	invoices.Post("/totals", invoiceHandler.Totals)
	invoices.Post("/validate", invoiceHandler.Validate)
	invoices.Post("/preview.pdf", invoiceHandler.PreviewPDF)

	// Pre-validación de acciones firmadas en la wallet
	preflightHandler := NewPreflightHandler(deps.PreflightUC)
	invoices.Post("/:id/milestones/release", preflightHandler.ReleaseMilestone)
	invoices.Post("/:id/disputes", preflightHandler.RaiseDispute)
	api.Post("/disputes/:id/resolve", preflightHandler.ResolveDispute)
	api.Get("/wallets/:wallet/check", preflightHandler.CheckWallet)

	// IA
	aiHandler := NewAIHandler(deps.AIUC)
	api.Post("/ai/parse-invoice", aiHandler.ParseInvoice)

	app.Use(NotFound)
}
