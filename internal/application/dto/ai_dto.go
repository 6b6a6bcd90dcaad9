package dto

import (
	"github.com/jhoicas/escrow-invoice-api/internal/domain/entity"
	"github.com/jhoicas/escrow-invoice-api/internal/domain/invoice"
	"github.com/jhoicas/escrow-invoice-api/internal/domain/money"
)

// ParseInvoiceRequest body para POST /api/ai/parse-invoice.
type ParseInvoiceRequest struct {
	Description string `json:"description"`
}

// ParsedInvoice factura extraída por el LLM a partir de texto libre.
// Montos y confianza son Numeric porque el modelo puede devolver números o strings.
type ParsedInvoice struct {
	InvoiceNumber string           `json:"invoice_number,omitempty"`
	Date          string           `json:"date,omitempty"`
	VendorName    string           `json:"vendor_name,omitempty"`
	BuyerName     string           `json:"buyer_name,omitempty"`
	TotalAmount   money.Numeric    `json:"total_amount"`
	Currency      string           `json:"currency,omitempty"`
	LineItems     []ParsedLineItem `json:"line_items,omitempty"`
	Confidence    money.Numeric    `json:"confidence"`
}

// ParsedLineItem línea devuelta por el LLM (unit_price o unitPrice).
type ParsedLineItem struct {
	Description    string        `json:"description"`
	Qty            money.Numeric `json:"qty"`
	UnitPriceSnake money.Numeric `json:"unit_price"`
	UnitPrice      money.Numeric `json:"unitPrice"`
}

// ParseInvoiceResponse factura lista para el editor, con errores y totales.
type ParseInvoiceResponse struct {
	Invoice *entity.Invoice     `json:"invoice"`
	Errors  invoice.FieldErrors `json:"errors"`
	Totals  TotalsResponse      `json:"totals"`
	Parsed  *ParsedInvoice      `json:"parsed"`
}
