package entity

import "github.com/jhoicas/escrow-invoice-api/internal/domain/money"

// LineItem representa una línea facturable (descripción, cantidad, precio unitario).
// El total de línea no se almacena; se deriva con invoice.ComputeLineTotal.
type LineItem struct {
	Description string        `json:"description"`
	Qty         money.Numeric `json:"qty"`
	UnitPrice   money.Numeric `json:"unitPrice"`
}

// EmptyLineItem es la línea inicial del editor: una unidad sin precio.
func EmptyLineItem() LineItem {
	return LineItem{Qty: money.NumericFromInt(1), UnitPrice: money.NumericFromInt(0)}
}
