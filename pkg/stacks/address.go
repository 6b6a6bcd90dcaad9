// Package stacks contiene utilidades de formato para identificadores de la red Stacks.
package stacks

import (
	"fmt"
	"regexp"
	"strings"
)

// Prefijos de red de una dirección Stacks.
const (
	PrefixMainnet = "SP"
	PrefixTestnet = "ST"
)

// Longitud admitida del cuerpo de la dirección (después del prefijo).
const (
	MinBodyLength = 38
	MaxBodyLength = 41
)

// addressRe valida solo la forma: prefijo + 38..41 caracteres alfanuméricos en mayúscula.
// No verifica el checksum c32.
var addressRe = regexp.MustCompile(`^(SP|ST)[0-9A-Z]{38,41}$`)

// IsValidAddress indica si s tiene el formato estructural de una dirección Stacks.
func IsValidAddress(s string) bool {
	return addressRe.MatchString(s)
}

// ValidateAddress igual que IsValidAddress pero con un error que explica el motivo.
func ValidateAddress(s string) error {
	if addressRe.MatchString(s) {
		return nil
	}
	if len(s) < 2 || (s[:2] != PrefixMainnet && s[:2] != PrefixTestnet) {
		return fmt.Errorf("stacks: la dirección debe empezar por %s o %s", PrefixMainnet, PrefixTestnet)
	}
	body := s[2:]
	if n := len(body); n < MinBodyLength || n > MaxBodyLength {
		return fmt.Errorf("stacks: se esperaban entre %d y %d caracteres tras el prefijo, se recibieron %d", MinBodyLength, MaxBodyLength, n)
	}
	if strings.ToUpper(body) != body {
		return fmt.Errorf("stacks: la dirección solo admite mayúsculas")
	}
	return fmt.Errorf("stacks: la dirección contiene caracteres no alfanuméricos")
}

// Network devuelve "mainnet" o "testnet" según el prefijo, o "" si el formato no es válido.
func Network(s string) string {
	if !IsValidAddress(s) {
		return ""
	}
	if strings.HasPrefix(s, PrefixMainnet) {
		return "mainnet"
	}
	return "testnet"
}
