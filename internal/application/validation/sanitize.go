package validation

import "strings"

var angleBrackets = strings.NewReplacer("<", "", ">", "")

// SanitizeInput elimina '<' y '>' y recorta espacios de un texto libre.
func SanitizeInput(s string) string {
	return strings.TrimSpace(angleBrackets.Replace(s))
}
