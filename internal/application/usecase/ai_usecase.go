package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/escrow-invoice-api/internal/application/billing"
	"github.com/jhoicas/escrow-invoice-api/internal/application/dto"
	"github.com/jhoicas/escrow-invoice-api/internal/application/ports"
	"github.com/jhoicas/escrow-invoice-api/internal/application/validation"
	"github.com/jhoicas/escrow-invoice-api/internal/domain/entity"
	"github.com/jhoicas/escrow-invoice-api/internal/domain/invoice"
	"github.com/jhoicas/escrow-invoice-api/internal/domain/money"
)

// DefaultAITimeout tiempo máximo de una llamada al LLM si no se configura otro.
const DefaultAITimeout = 10 * time.Second

// AIUseCase orquesta la interpretación de facturas en texto libre asistida por IA.
// Aplica un timeout en cada llamada al LLM para que las latencias externas no
// bloqueen los goroutines del servidor.
type AIUseCase struct {
	llm             ports.InvoiceParser
	timeout         time.Duration
	defaultCurrency entity.Currency
}

// NewAIUseCase construye el caso de uso inyectando el puerto InvoiceParser.
func NewAIUseCase(llm ports.InvoiceParser, timeout time.Duration, defaultCurrency entity.Currency) *AIUseCase {
	if timeout <= 0 {
		timeout = DefaultAITimeout
	}
	if defaultCurrency == "" {
		defaultCurrency = entity.DefaultCurrency
	}
	return &AIUseCase{llm: llm, timeout: timeout, defaultCurrency: defaultCurrency}
}

// ParseInvoice valida la entrada, delega al LLM y devuelve la factura lista para el editor
// junto con los errores del validador y los totales calculados.
func (uc *AIUseCase) ParseInvoice(ctx context.Context, req dto.ParseInvoiceRequest) (*dto.ParseInvoiceResponse, error) {
	if err := validation.AIParse(&req); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	parsed, err := uc.llm.ParseInvoice(ctx, req.Description)
	if err != nil {
		return nil, fmt.Errorf("interpretación IA: %w", err)
	}

	inv := MergeParsed(parsed, uc.defaultCurrency)
	totals := invoice.ComputeTotals(inv)
	return &dto.ParseInvoiceResponse{
		Invoice: inv,
		Errors:  invoice.Validate(inv),
		Totals:  billing.BuildTotalsResponse(inv.LineItems, totals, inv.Currency),
		Parsed:  parsed,
	}, nil
}

// MergeParsed convierte lo devuelto por el LLM en una factura del editor.
// Sin líneas se deja una línea vacía (1 × 0); una moneda no soportada se reemplaza por la por defecto.
func MergeParsed(p *dto.ParsedInvoice, defaultCurrency entity.Currency) *entity.Invoice {
	inv := &entity.Invoice{
		Currency:    defaultCurrency,
		Tax:         money.NumericFromInt(0),
		Discount:    money.NumericFromInt(0),
		TotalAmount: money.NumericFromInt(0),
		LineItems:   []entity.LineItem{entity.EmptyLineItem()},
	}
	if p == nil {
		return inv
	}

	inv.InvoiceNumber = p.InvoiceNumber
	inv.Date = p.Date
	inv.VendorName = p.VendorName
	inv.BuyerName = p.BuyerName
	if c := entity.Currency(p.Currency); c.IsSupported() {
		inv.Currency = c
	}
	if money.Truthy(p.TotalAmount) {
		inv.TotalAmount = p.TotalAmount
	}
	if len(p.LineItems) > 0 {
		inv.LineItems = make([]entity.LineItem, 0, len(p.LineItems))
		for _, li := range p.LineItems {
			qty := li.Qty
			if !money.Truthy(qty) {
				qty = money.NumericFromInt(1)
			}
			price := li.UnitPriceSnake
			if !money.Truthy(price) {
				price = li.UnitPrice
			}
			if !money.Truthy(price) {
				price = money.NumericFromInt(0)
			}
			inv.LineItems = append(inv.LineItems, entity.LineItem{
				Description: li.Description,
				Qty:         qty,
				UnitPrice:   price,
			})
		}
	}
	if money.Positive(p.Confidence) {
		c := p.Confidence.Value.InexactFloat64()
		inv.ParserConfidence = &c
	}
	return inv
}
