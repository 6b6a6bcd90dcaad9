package ports

import (
	"context"

	"github.com/jhoicas/escrow-invoice-api/internal/application/dto"
)

// InvoiceParser define el puerto de salida para interpretar facturas en texto libre con un LLM.
// Cualquier adaptador (Anthropic, Gemini, mock) debe implementar esta interfaz;
// la aplicación solo conoce este contrato, no la implementación concreta.
type InvoiceParser interface {
	// ParseInvoice extrae encabezado, líneas y moneda de una descripción en lenguaje natural.
	// El contexto debe llevar un timeout para evitar bloqueos en llamadas externas.
	ParseInvoice(ctx context.Context, description string) (*dto.ParsedInvoice, error)
}
