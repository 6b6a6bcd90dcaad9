package invoice

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jhoicas/escrow-invoice-api/internal/domain/entity"
	"github.com/jhoicas/escrow-invoice-api/internal/domain/money"
)

// Claves de error del editor. Las de línea se construyen con LineKey.
const (
	KeyVendorName  = "vendor_name"
	KeyBuyerName   = "buyer_name"
	KeyDate        = "date"
	KeyTotalAmount = "total_amount"
	KeyLineItems   = "line_items"
	KeyCurrency    = "currency"
)

const (
	msgVendorRequired    = "Vendor name required"
	msgBuyerRequired     = "Buyer name required"
	msgDateRequired      = "Invoice date required"
	msgTotalPositive     = "Total must be a positive number"
	msgLineItemsRequired = "Add at least one line item"
	msgDescription       = "Description required"
	msgQty               = "Quantity must be > 0"
	msgUnitPrice         = "Unit price required"
	msgCurrency          = "Invalid currency"
	msgTotalMismatchFmt  = "Total does not match line items (expected %s)"
)

// FieldErrors mapa campo → mensaje. Vacío significa factura válida.
type FieldErrors map[string]string

// Valid indica que no hay errores.
func (f FieldErrors) Valid() bool { return len(f) == 0 }

// Keys devuelve las claves ordenadas (salida estable para logs y CLI).
func (f FieldErrors) Keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// HasAmountMismatch indica si el error de total_amount es de descuadre con las líneas
// y no de presencia o signo.
func (f FieldErrors) HasAmountMismatch() bool {
	msg, ok := f[KeyTotalAmount]
	return ok && msg != msgTotalPositive
}

// LineKey arma la clave de error de una línea: line_{i}_{campo}.
func LineKey(idx int, field string) string {
	return fmt.Sprintf("line_%d_%s", idx, field)
}

// Validate aplica las reglas del editor y acumula todos los errores (no corta en el primero).
//
// Política de precio unitario: el editor exige un precio distinto de cero; la capa HTTP
// (application/validation) acepta cero.
//
// El total declarado debe coincidir, con tolerancia de un centavo, con el total calculado
// (líneas + impuesto - descuento).
func Validate(inv *entity.Invoice) FieldErrors {
	errs := FieldErrors{}
	if inv == nil {
		inv = &entity.Invoice{}
	}

	if strings.TrimSpace(inv.VendorName) == "" {
		errs[KeyVendorName] = msgVendorRequired
	}
	if strings.TrimSpace(inv.BuyerName) == "" {
		errs[KeyBuyerName] = msgBuyerRequired
	}
	if inv.Date == "" {
		errs[KeyDate] = msgDateRequired
	}
	if inv.Currency != "" && !inv.Currency.IsSupported() {
		errs[KeyCurrency] = msgCurrency
	}

	amountOK := money.Positive(inv.TotalAmount)
	if !amountOK {
		errs[KeyTotalAmount] = msgTotalPositive
	}

	if len(inv.LineItems) == 0 {
		errs[KeyLineItems] = msgLineItemsRequired
		return errs
	}

	for idx, li := range inv.LineItems {
		if strings.TrimSpace(li.Description) == "" {
			errs[LineKey(idx, "description")] = msgDescription
		}
		if !money.Positive(li.Qty) {
			errs[LineKey(idx, "qty")] = msgQty
		}
		if !money.Truthy(li.UnitPrice) || li.UnitPrice.Value.IsNegative() {
			errs[LineKey(idx, "unitPrice")] = msgUnitPrice
		}
	}

	if amountOK {
		totals := ComputeTotals(inv)
		if !money.WithinTolerance(totals.Total, inv.TotalAmount.Value) {
			errs[KeyTotalAmount] = fmt.Sprintf(msgTotalMismatchFmt, totals.Total.StringFixed(2))
		}
	}
	return errs
}
