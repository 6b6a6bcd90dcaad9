package invoice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/escrow-invoice-api/internal/domain/entity"
	"github.com/jhoicas/escrow-invoice-api/internal/domain/invoice"
	"github.com/jhoicas/escrow-invoice-api/internal/domain/money"
)

func num(s string) money.Numeric { return money.ParseNumeric(s) }

func line(desc, qty, price string) entity.LineItem {
	return entity.LineItem{Description: desc, Qty: num(qty), UnitPrice: num(price)}
}

func TestComputeLineTotal(t *testing.T) {
	cases := []struct {
		qty, price, want string
	}{
		{"2", "150.00", "300.00"},
		{"3", "0.005", "0.02"},
		{"1", "0.004", "0.00"},
		{"1.5", "3.333", "5.00"},
		{"0", "99", "0.00"},
		{"abc", "10", "0.00"},
		{"", "", "0.00"},
	}
	for _, tc := range cases {
		got := invoice.ComputeLineTotal(num(tc.qty), num(tc.price))
		assert.Equal(t, tc.want, got.StringFixed(2), "qty=%s price=%s", tc.qty, tc.price)
		assert.False(t, got.IsNegative())
	}
}

func TestComputeLineTotal_Ausentes(t *testing.T) {
	assert.True(t, invoice.ComputeLineTotal(money.Numeric{}, money.Numeric{}).IsZero())
}

// Redondear cada línea antes de sumar no equivale a sumar y redondear una sola vez.
func TestComputeInvoiceTotal_RedondeoPorLinea(t *testing.T) {
	items := []entity.LineItem{
		line("a", "1", "0.004"),
		line("b", "1", "0.004"),
	}
	totals := invoice.ComputeInvoiceTotal(items, money.Numeric{}, money.Numeric{})
	assert.Equal(t, "0.00", totals.LinesSum.StringFixed(2))

	raw := money.Round2(num("0.004").Value.Add(num("0.004").Value))
	assert.Equal(t, "0.01", raw.StringFixed(2), "sumar primero daría un centavo")
}

func TestComputeInvoiceTotal_Vacio(t *testing.T) {
	totals := invoice.ComputeInvoiceTotal(nil, money.NumericFromInt(5), money.NumericFromInt(2))
	assert.True(t, totals.LinesSum.IsZero())
	assert.Equal(t, "5", totals.TaxAmount.String())
	assert.Equal(t, "2", totals.DiscountAmount.String())
	assert.Equal(t, "3.00", totals.Total.StringFixed(2))
}

func TestComputeInvoiceTotal_Escenario(t *testing.T) {
	items := []entity.LineItem{line("Consulting", "2", "150.00")}
	totals := invoice.ComputeInvoiceTotal(items, money.NumericFromInt(10), money.NumericFromInt(5))
	assert.Equal(t, "300.00", totals.LinesSum.StringFixed(2))
	assert.Equal(t, "305.00", totals.Total.StringFixed(2))
}

func TestComputeInvoiceTotal_Idempotente(t *testing.T) {
	items := []entity.LineItem{line("x", "3", "19.999"), line("y", "0.5", "7.01")}
	first := invoice.ComputeInvoiceTotal(items, num("1.111"), num("0.5"))
	second := invoice.ComputeInvoiceTotal(items, num("1.111"), num("0.5"))
	assert.True(t, first.LinesSum.Equal(second.LinesSum))
	assert.True(t, first.Total.Equal(second.Total))
	assert.Equal(t, "1.111", first.TaxAmount.String(), "impuesto no se redondea por separado")
}

func TestComputeInvoiceTotal_ImpuestoNoNumerico(t *testing.T) {
	items := []entity.LineItem{line("x", "1", "10")}
	totals := invoice.ComputeInvoiceTotal(items, num("n/a"), money.Numeric{})
	assert.True(t, totals.TaxAmount.IsZero())
	assert.Equal(t, "10.00", totals.Total.StringFixed(2))
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "USD 12.50", invoice.FormatCurrency(num("12.5"), entity.CurrencyUSD))
	assert.Equal(t, "STX 0.00", invoice.FormatCurrency(num("0"), entity.CurrencySTX))
	assert.Equal(t, "USD 3.00", invoice.FormatCurrency(num("3"), ""))
	assert.Equal(t, "", invoice.FormatCurrency(money.Numeric{}, entity.CurrencyUSD))
	assert.Equal(t, "", invoice.FormatCurrency(num("abc"), entity.CurrencyUSD))
}
