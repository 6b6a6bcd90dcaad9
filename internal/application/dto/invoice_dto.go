package dto

import (
	"encoding/json"

	"github.com/jhoicas/escrow-invoice-api/internal/domain/entity"
	"github.com/jhoicas/escrow-invoice-api/internal/domain/invoice"
	"github.com/jhoicas/escrow-invoice-api/internal/domain/money"
)

// InvoiceRequest body de los endpoints del editor.
// Acepta {"invoice": {...}} (como lo envía el editor) o la factura en la raíz.
type InvoiceRequest struct {
	Invoice entity.Invoice
}

// UnmarshalJSON resuelve las dos formas del body.
func (r *InvoiceRequest) UnmarshalJSON(data []byte) error {
	var wrapped struct {
		Invoice *entity.Invoice `json:"invoice"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return err
	}
	if wrapped.Invoice != nil {
		r.Invoice = *wrapped.Invoice
		return nil
	}
	return json.Unmarshal(data, &r.Invoice)
}

// TotalsRequest body para POST /api/invoices/totals.
type TotalsRequest struct {
	LineItems []entity.LineItem `json:"line_items"`
	Tax       money.Numeric     `json:"tax"`
	Discount  money.Numeric     `json:"discount"`
	Currency  entity.Currency   `json:"currency,omitempty"`
}

// TotalsResponse totales calculados y su representación formateada.
type TotalsResponse struct {
	invoice.Totals
	LineTotals []string        `json:"line_totals"`
	Currency   entity.Currency `json:"currency"`
	Formatted  FormattedTotals `json:"formatted"`
}

// FormattedTotals montos listos para mostrar ("USD 305.00").
type FormattedTotals struct {
	LinesSum string `json:"lines_sum"`
	Tax      string `json:"tax"`
	Discount string `json:"discount"`
	Total    string `json:"total"`
}

// ValidateInvoiceResponse resultado de la validación del editor.
type ValidateInvoiceResponse struct {
	Valid  bool                `json:"valid"`
	Errors invoice.FieldErrors `json:"errors"`
	Totals TotalsResponse      `json:"totals"`
}
