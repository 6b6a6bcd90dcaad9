package billing

import (
	"context"

	"github.com/jhoicas/escrow-invoice-api/internal/domain/entity"
	"github.com/jhoicas/escrow-invoice-api/internal/domain/invoice"
)

// InvoicePDFGenerator genera la vista previa en PDF de una factura ya validada.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, inv *entity.Invoice, totals invoice.Totals) ([]byte, error)
}

// IDGenerator genera identificadores de borrador (uuid en producción, fijo en tests).
type IDGenerator func() string
