package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/escrow-invoice-api/internal/domain/entity"
	"github.com/jhoicas/escrow-invoice-api/internal/domain/money"
)

// CreateDealRequest body para POST /api/invoice/create-deal.
// lineItems también se acepta como line_items.
type CreateDealRequest struct {
	Description       string         `json:"description"`
	ClientAddress     string         `json:"clientAddress"`
	ContractorAddress string         `json:"contractorAddress,omitempty"`
	ArbitratorAddress string         `json:"arbitratorAddress,omitempty"`
	TotalAmount       money.Numeric  `json:"totalAmount"`
	Currency          string         `json:"currency,omitempty"`
	LineItems         []DealLineItem `json:"lineItems"`
}

// UnmarshalJSON acepta line_items como alias de lineItems.
func (r *CreateDealRequest) UnmarshalJSON(data []byte) error {
	type plain CreateDealRequest
	var aux struct {
		plain
		LineItemsSnake []DealLineItem `json:"line_items"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*r = CreateDealRequest(aux.plain)
	if r.LineItems == nil && aux.LineItemsSnake != nil {
		r.LineItems = aux.LineItemsSnake
	}
	return nil
}

// DealLineItem línea enviada en la creación del deal.
// Cantidad: qty o quantity. Precio: unitPrice, unit_price o price. Gana el primero presente.
type DealLineItem struct {
	Description    string        `json:"description"`
	Qty            money.Numeric `json:"qty"`
	Quantity       money.Numeric `json:"quantity"`
	UnitPrice      money.Numeric `json:"unitPrice"`
	UnitPriceSnake money.Numeric `json:"unit_price"`
	Price          money.Numeric `json:"price"`
}

// QtyValue cantidad efectiva de la línea.
func (l DealLineItem) QtyValue() money.Numeric {
	return firstSet(l.Qty, l.Quantity)
}

// UnitPriceValue precio unitario efectivo de la línea.
func (l DealLineItem) UnitPriceValue() money.Numeric {
	return firstSet(l.UnitPrice, l.UnitPriceSnake, l.Price)
}

// ToEntity convierte la línea al modelo de dominio.
func (l DealLineItem) ToEntity() entity.LineItem {
	return entity.LineItem{
		Description: l.Description,
		Qty:         l.QtyValue(),
		UnitPrice:   l.UnitPriceValue(),
	}
}

func firstSet(values ...money.Numeric) money.Numeric {
	for _, v := range values {
		if v.Set {
			return v
		}
	}
	return money.Numeric{}
}

// DealPreview resultado de preparar un deal: validado, con totales, listo para firmar en la wallet.
type DealPreview struct {
	DraftID           string            `json:"draft_id"`
	Status            string            `json:"status"`
	Description       string            `json:"description"`
	ClientAddress     string            `json:"client_address"`
	ContractorAddress string            `json:"contractor_address,omitempty"`
	ArbitratorAddress string            `json:"arbitrator_address,omitempty"`
	Network           string            `json:"network"`
	Currency          entity.Currency   `json:"currency"`
	LineItems         []LineItemPreview `json:"line_items"`
	TotalAmount       decimal.Decimal   `json:"total_amount"`
	LinesSum          decimal.Decimal   `json:"lines_sum"`
	FormattedTotal    string            `json:"formatted_total"`
	Fingerprint       string            `json:"fingerprint"`
}

// LineItemPreview línea normalizada con su total calculado.
type LineItemPreview struct {
	Description string          `json:"description"`
	Qty         decimal.Decimal `json:"qty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}
