// Package ai contiene los adaptadores LLM que implementan ports.InvoiceParser.
package ai

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/escrow-invoice-api/internal/application/dto"
	"github.com/jhoicas/escrow-invoice-api/internal/domain/money"
)

// invoiceSystemPrompt define el rol del modelo y el formato de salida.
const invoiceSystemPrompt = `You extract invoice data from free-form text.
Return ONLY a valid JSON object (no markdown, no code fences) with this exact structure:
{
  "invoice_number": "<string or empty>",
  "date": "<YYYY-MM-DD or empty>",
  "vendor_name": "<string>",
  "buyer_name": "<string>",
  "currency": "<one of sBTC, STX, USD>",
  "line_items": [
    {"description": "<string>", "qty": <number>, "unit_price": <number>}
  ],
  "total_amount": <number>,
  "confidence": <number between 0.0 and 1.0>
}

Rules:
- Do not invent line items that are not in the text.
- If a field is unknown, use an empty string or 0.
- total_amount is the sum of qty * unit_price unless the text states otherwise.`

// maxResponseBytes límite de lectura del cuerpo de respuesta del proveedor.
const maxResponseBytes = 64 * 1024

// jsonBlockRe extrae el primer objeto JSON del texto aunque el modelo lo envuelva en markdown.
var jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}`)

// decodeParsedInvoice convierte el texto del modelo en una factura interpretada.
func decodeParsedInvoice(rawText string) (*dto.ParsedInvoice, error) {
	cleanJSON := extractJSON(rawText)
	if cleanJSON == "" {
		return nil, fmt.Errorf("AI: no se encontró JSON válido en la respuesta del modelo (respuesta: %s)", rawText)
	}
	var parsed dto.ParsedInvoice
	if err := json.Unmarshal([]byte(cleanJSON), &parsed); err != nil {
		return nil, fmt.Errorf("AI: parsear JSON de factura: %w (JSON extraído: %s)", err, cleanJSON)
	}
	parsed.Confidence = clampConfidence(parsed.Confidence)
	return &parsed, nil
}

// extractJSON extrae el primer objeto JSON de un texto libre.
// Primero elimina bloques markdown (```json … ```) y luego recurre a la regex.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.Index(text, "```"); idx != -1 {
		after := text[idx+3:]
		if nl := strings.Index(after, "\n"); nl != -1 {
			after = after[nl+1:]
		}
		if end := strings.LastIndex(after, "```"); end != -1 {
			after = after[:end]
		}
		text = strings.TrimSpace(after)
	}
	if strings.HasPrefix(text, "{") {
		return text
	}
	return strings.TrimSpace(jsonBlockRe.FindString(text))
}

// clampConfidence limita la confianza a [0, 1]; lo no numérico queda sin valor.
func clampConfidence(c money.Numeric) money.Numeric {
	switch {
	case !c.Valid:
		return money.Numeric{}
	case c.Value.IsNegative():
		return money.NumericFromInt(0)
	case c.Value.GreaterThan(decimal.NewFromInt(1)):
		return money.NumericFromInt(1)
	default:
		return c
	}
}
