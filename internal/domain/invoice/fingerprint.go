package invoice

import (
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/escrow-invoice-api/internal/domain/entity"
	"github.com/jhoicas/escrow-invoice-api/internal/domain/money"
)

// FingerprintParams datos de un deal que entran en su huella.
type FingerprintParams struct {
	ClientAddress     string
	ContractorAddress string
	ArbitratorAddress string
	Currency          entity.Currency
	TotalAmount       decimal.Decimal
	LineItems         []entity.LineItem
}

// Fingerprint calcula la huella SHA-384 (hex) de un deal.
//
// Cadena: client|contractor|arbitrator|currency|total, seguida de
// |qty*unitPrice=lineTotal por cada línea, en orden. Montos con punto decimal y 2 decimales.
// La huella identifica el contenido económico del deal; la descripción no participa.
func Fingerprint(p FingerprintParams) (string, error) {
	client := strings.TrimSpace(p.ClientAddress)
	if client == "" {
		return "", fmt.Errorf("invoice: ClientAddress es obligatorio para la huella")
	}
	if len(p.LineItems) == 0 {
		return "", fmt.Errorf("invoice: se requiere al menos una línea para la huella")
	}

	var b strings.Builder
	b.WriteString(client)
	b.WriteByte('|')
	b.WriteString(strings.TrimSpace(p.ContractorAddress))
	b.WriteByte('|')
	b.WriteString(strings.TrimSpace(p.ArbitratorAddress))
	b.WriteByte('|')
	b.WriteString(string(p.Currency))
	b.WriteByte('|')
	b.WriteString(fixed2(p.TotalAmount))
	for _, li := range p.LineItems {
		fmt.Fprintf(&b, "|%s*%s=%s",
			money.Coerce(li.Qty).String(),
			fixed2(money.Coerce(li.UnitPrice)),
			fixed2(ComputeLineTotal(li.Qty, li.UnitPrice)))
	}

	hash := sha512.Sum384([]byte(b.String()))
	return hex.EncodeToString(hash[:]), nil
}

func fixed2(d decimal.Decimal) string {
	return d.Round(2).StringFixed(2)
}
