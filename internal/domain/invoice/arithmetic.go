// Package invoice contiene la aritmética de facturas (totales de línea, subtotal,
// impuesto, descuento, total) y el validador estructural que usa el editor.
// Todas las funciones son puras: sin estado, sin I/O, seguras para uso concurrente.
package invoice

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/escrow-invoice-api/internal/domain/entity"
	"github.com/jhoicas/escrow-invoice-api/internal/domain/money"
)

// Totals resultado del cálculo de una factura. Se recalcula en cada evaluación.
type Totals struct {
	LinesSum       decimal.Decimal `json:"lines_sum"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	Total          decimal.Decimal `json:"total"`
}

// ComputeLineTotal = round2(cantidad × precio unitario).
// Entradas ausentes o no numéricas valen cero; nunca falla.
func ComputeLineTotal(qty, unitPrice money.Numeric) decimal.Decimal {
	return money.Round2(money.Coerce(qty).Mul(money.Coerce(unitPrice)))
}

// LineSum suma los totales de línea, cada uno redondeado a centavos antes de sumar.
func LineSum(items []entity.LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, li := range items {
		sum = sum.Add(ComputeLineTotal(li.Qty, li.UnitPrice))
	}
	return sum
}

// ComputeInvoiceTotal calcula subtotal, impuesto, descuento y total.
// Total = round2(LinesSum + TaxAmount - DiscountAmount). Con items vacíos LinesSum = 0.
func ComputeInvoiceTotal(items []entity.LineItem, tax, discount money.Numeric) Totals {
	linesSum := LineSum(items)
	taxAmount := money.Coerce(tax)
	discountAmount := money.Coerce(discount)
	return Totals{
		LinesSum:       linesSum,
		TaxAmount:      taxAmount,
		DiscountAmount: discountAmount,
		Total:          money.Round2(linesSum.Add(taxAmount).Sub(discountAmount)),
	}
}

// ComputeTotals atajo sobre una factura completa.
func ComputeTotals(inv *entity.Invoice) Totals {
	if inv == nil {
		return ComputeInvoiceTotal(nil, money.Numeric{}, money.Numeric{})
	}
	return ComputeInvoiceTotal(inv.LineItems, inv.Tax, inv.Discount)
}

// FormatCurrency devuelve "{moneda} {valor con 2 decimales}" o "" si el valor no es numérico.
func FormatCurrency(value money.Numeric, currency entity.Currency) string {
	if !value.Valid {
		return ""
	}
	return FormatAmount(value.Value, currency)
}

// FormatAmount igual que FormatCurrency para un decimal ya calculado.
func FormatAmount(value decimal.Decimal, currency entity.Currency) string {
	if currency == "" {
		currency = entity.DefaultCurrency
	}
	return string(currency) + " " + value.StringFixed(2)
}
