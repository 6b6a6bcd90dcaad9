package entity

import "github.com/jhoicas/escrow-invoice-api/internal/domain/money"

// Invoice es la factura que se edita en el cliente antes de crear el deal en escrow.
// No tiene identidad propia ni se persiste: se construye en cada validación o cálculo.
type Invoice struct {
	InvoiceNumber    string        `json:"invoice_number,omitempty"`
	Date             string        `json:"date"`
	VendorName       string        `json:"vendor_name"`
	BuyerName        string        `json:"buyer_name"`
	Currency         Currency      `json:"currency,omitempty"`
	Tax              money.Numeric `json:"tax"`
	Discount         money.Numeric `json:"discount"`
	TotalAmount      money.Numeric `json:"total_amount"`
	LineItems        []LineItem    `json:"line_items"`
	ParserConfidence *float64      `json:"parser_confidence,omitempty"`
}

// CurrencyOr devuelve la moneda de la factura o def si no se indicó.
func (i *Invoice) CurrencyOr(def Currency) Currency {
	if i.Currency == "" {
		return def
	}
	return i.Currency
}
