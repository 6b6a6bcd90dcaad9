package money

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Tolerance es la diferencia máxima aceptada entre un total declarado y el calculado (un centavo).
var Tolerance = decimal.New(1, -2)

// Coerce convierte un Numeric en decimal. Nunca falla: lo ausente o no numérico vale cero.
// Es la única conversión que debe usar la aritmética de facturas.
func Coerce(n Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}
	return n.Value
}

// CoerceAny aplica la misma política que Coerce a valores sin tipo
// (por ejemplo campos de un map decodificado de JSON).
func CoerceAny(v any) decimal.Decimal {
	switch x := v.(type) {
	case nil:
		return decimal.Zero
	case Numeric:
		return Coerce(x)
	case *Numeric:
		if x == nil {
			return decimal.Zero
		}
		return Coerce(*x)
	case decimal.Decimal:
		return x
	case string:
		return Coerce(ParseNumeric(x))
	case json.Number:
		return Coerce(ParseNumeric(x.String()))
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return decimal.Zero
		}
		d := decimal.NewFromFloat(x)
		if !inRange(d) {
			return decimal.Zero
		}
		return d
	case float32:
		return CoerceAny(float64(x))
	case int, int8, int16, int32, int64:
		return Coerce(ParseNumeric(fmt.Sprint(x)))
	case uint, uint8, uint16, uint32, uint64:
		return Coerce(ParseNumeric(fmt.Sprint(x)))
	case bool:
		if x {
			return decimal.NewFromInt(1)
		}
		return decimal.Zero
	default:
		return decimal.Zero
	}
}

// Round2 redondea a centavos: escala por 100, redondea al entero más cercano
// (mitades lejos de cero) y vuelve a dividir.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// WithinTolerance indica si a y b, redondeados a centavos, difieren como máximo en Tolerance.
// El límite es inclusivo: 100.00 frente a 100.01 se acepta.
func WithinTolerance(a, b decimal.Decimal) bool {
	return Round2(a).Sub(Round2(b)).Abs().LessThanOrEqual(Tolerance)
}

// Truthy aplica la política de "valor presente" del editor: numérico y distinto de cero.
func Truthy(n Numeric) bool {
	return n.Valid && !n.Value.IsZero()
}

// Positive indica si el valor es numérico y estrictamente mayor que cero.
func Positive(n Numeric) bool {
	return n.Valid && n.Value.GreaterThan(decimal.Zero)
}

// NonNegative indica si el valor es numérico y mayor o igual a cero.
func NonNegative(n Numeric) bool {
	return n.Valid && !n.Value.IsNegative()
}
