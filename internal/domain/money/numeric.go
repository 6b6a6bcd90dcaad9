// Package money concentra la representación numérica de montos y cantidades
// recibidos de clientes (formularios, parsers IA, peticiones HTTP) y la
// política de redondeo a centavos compartida por el cálculo y la validación.
package money

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Numeric es un valor numérico tal como lo envía el cliente.
// Acepta número JSON, string numérico, booleano o null/ausente y recuerda
// si el campo vino (Set) y si pudo interpretarse como número (Valid).
// Decodificar un Numeric nunca falla: lo que no es numérico queda con Valid=false.
type Numeric struct {
	Value decimal.Decimal
	Valid bool
	Set   bool
}

// NewNumeric construye un Numeric válido a partir de un decimal.
func NewNumeric(d decimal.Decimal) Numeric {
	return Numeric{Value: d, Valid: true, Set: true}
}

// NumericFromFloat construye un Numeric válido a partir de un float64.
func NumericFromFloat(f float64) Numeric {
	return NewNumeric(decimal.NewFromFloat(f))
}

// NumericFromInt construye un Numeric válido a partir de un entero.
func NumericFromInt(i int64) Numeric {
	return NewNumeric(decimal.NewFromInt(i))
}

// Límites de lo que se acepta como monto: fuera de ellos el reescalado de
// big.Int en Round2/Cmp crece con el exponente.
const (
	maxInputLen        = 64
	minExponent        = -18
	maxExponent        = 18
	maxCoefficientBits = 100 // ~30 dígitos
)

// ParseNumeric interpreta un string; si no es numérico, o excede los límites
// de longitud, exponente o dígitos, devuelve Set=true, Valid=false.
func ParseNumeric(s string) Numeric {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > maxInputLen {
		return Numeric{Set: true}
	}
	d, err := decimal.NewFromString(s)
	if err != nil || !inRange(d) {
		return Numeric{Set: true}
	}
	return NewNumeric(d)
}

func inRange(d decimal.Decimal) bool {
	exp := d.Exponent()
	if exp < minExponent || exp > maxExponent {
		return false
	}
	return d.Coefficient().BitLen() <= maxCoefficientBits
}

// UnmarshalJSON implementa json.Unmarshaler.
func (n *Numeric) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*n = Numeric{}
	switch {
	case len(data) == 0, bytes.Equal(data, []byte("null")):
		return nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			n.Set = true
			return nil
		}
		*n = ParseNumeric(s)
	case bytes.Equal(data, []byte("true")):
		*n = NewNumeric(decimal.NewFromInt(1))
	case bytes.Equal(data, []byte("false")):
		*n = NewNumeric(decimal.Zero)
	default:
		*n = ParseNumeric(string(data))
	}
	return nil
}

// MarshalJSON serializa el valor como decimal o null si no es numérico.
func (n Numeric) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return n.Value.MarshalJSON()
}

// String devuelve la representación decimal o "" si no es numérico.
func (n Numeric) String() string {
	if !n.Valid {
		return ""
	}
	return n.Value.String()
}
