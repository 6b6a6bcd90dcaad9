package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/jhoicas/escrow-invoice-api/internal/application/dto"
	"github.com/jhoicas/escrow-invoice-api/internal/domain/entity"
	"github.com/jhoicas/escrow-invoice-api/internal/domain/invoice"
	"github.com/jhoicas/escrow-invoice-api/internal/domain/money"
)

const msgInvalidAddress = "Invalid Stacks address format"

const currencyTags = "omitempty,oneof=sBTC STX USD"

// CreateInvoice valida el body de creación de un deal.
//
// Política de precio unitario: aquí 0 es válido (>= 0), a diferencia del editor.
// Si el total declarado no coincide con la suma de líneas (tolerancia de un centavo)
// el error se clasifica como AMOUNT_MISMATCH.
func CreateInvoice(req *dto.CreateDealRequest) error {
	c := newChecker()
	if req == nil {
		req = &dto.CreateDealRequest{}
	}

	c.check("description", req.Description, "required,min=10,max=5000", messages{
		"required": "Description is required",
		"":         "Description must be between 10 and 5000 characters",
	})
	c.check("clientAddress", req.ClientAddress, "required,"+TagStacksAddress, messages{
		"required": "Client address is required",
		"":         msgInvalidAddress,
	})
	c.check("contractorAddress", req.ContractorAddress, "omitempty,"+TagStacksAddress, messages{"": msgInvalidAddress})
	c.check("arbitratorAddress", req.ArbitratorAddress, "omitempty,"+TagStacksAddress, messages{"": msgInvalidAddress})

	items := make([]entity.LineItem, 0, len(req.LineItems))
	for _, li := range req.LineItems {
		items = append(items, li.ToEntity())
	}

	if !money.Positive(req.TotalAmount) {
		c.add("totalAmount", "Total amount must be greater than 0")
	}
	if len(items) == 0 {
		c.add("totalAmount", "At least one line item is required")
	} else if money.Positive(req.TotalAmount) {
		lineSum := money.Round2(invoice.LineSum(items))
		amount := money.Round2(req.TotalAmount.Value)
		if !money.WithinTolerance(lineSum, amount) {
			c.addMismatch("totalAmount", fmt.Sprintf(
				"Total amount %s does not match line items sum %s", amount.String(), lineSum.String()))
		}
	}

	c.check("currency", req.Currency, currencyTags, messages{"": "Invalid currency"})

	if len(items) == 0 {
		c.add("lineItems", "At least one line item is required")
	}
	for i, li := range items {
		prefix := fmt.Sprintf("lineItems[%d].", i)
		c.check(prefix+"description", li.Description, "required", messages{"": "Line item description is required"})
		if !money.Positive(li.Qty) {
			c.add(prefix+"qty", "Line item quantity must be greater than 0")
		}
		if !money.NonNegative(li.UnitPrice) {
			c.add(prefix+"unitPrice", "Line item unit price must be non-negative")
		}
	}
	return c.result()
}

// ReleaseMilestone valida la liberación de un hito.
func ReleaseMilestone(req *dto.ReleaseMilestoneRequest) error {
	c := newChecker()
	c.check("id", req.InvoiceID, "required", messages{"": "Invoice ID is required"})
	c.check("milestoneId", req.MilestoneID, "required", messages{"": "Milestone ID is required"})
	c.check("clientKey", req.ClientKey, "required", messages{"": "Client private key is required"})
	return c.result()
}

// RaiseDispute valida la apertura de una disputa.
func RaiseDispute(req *dto.RaiseDisputeRequest) error {
	c := newChecker()
	c.check("id", req.InvoiceID, "required", messages{"": "Invoice ID is required"})
	c.check("raisedBy", req.RaisedBy, "required,"+TagStacksAddress, messages{
		"required": "Raiser wallet address is required",
		"":         msgInvalidAddress,
	})
	c.check("reason", req.Reason, "required,min=10,max=1000", messages{
		"required": "Dispute reason is required",
		"":         "Reason must be between 10 and 1000 characters",
	})
	c.check("evidence", req.Evidence, "omitempty,max=5000", messages{"": "Evidence must not exceed 5000 characters"})
	return c.result()
}

// ResolveDispute valida la resolución de una disputa por el árbitro.
func ResolveDispute(req *dto.ResolveDisputeRequest) error {
	c := newChecker()
	c.check("id", req.DisputeID, "required", messages{"": "Dispute ID is required"})
	c.check("resolution", req.Resolution, "required,min=10,max=1000", messages{
		"required": "Resolution is required",
		"":         "Resolution must be between 10 and 1000 characters",
	})
	if _, ok := ParseBoolFlag(req.FavorClient); !ok {
		c.add("favorClient", "favorClient must be a boolean")
	}
	c.check("arbitratorKey", req.ArbitratorKey, "required", messages{"": "Arbitrator private key is required"})
	return c.result()
}

// WalletAddress valida el parámetro :wallet.
func WalletAddress(wallet string) error {
	c := newChecker()
	c.check("wallet", wallet, "required,"+TagStacksAddress, messages{
		"required": "Wallet address is required",
		"":         msgInvalidAddress,
	})
	return c.result()
}

// InvoiceID valida el parámetro :id.
func InvoiceID(id string) error {
	c := newChecker()
	c.check("id", id, "required", messages{"": "Invoice ID is required"})
	return c.result()
}

// AIParse valida el texto a interpretar por el LLM.
func AIParse(req *dto.ParseInvoiceRequest) error {
	c := newChecker()
	c.check("description", req.Description, "required,min=20,max=10000", messages{
		"required": "Description is required",
		"":         "Description must be between 20 and 10000 characters",
	})
	return c.result()
}

// ParseBoolFlag interpreta un booleano estricto: true/false, "true"/"false", "1"/"0" o 1/0.
// El segundo valor es false si el campo falta o no es booleano.
func ParseBoolFlag(raw json.RawMessage) (bool, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return false, false
	}
	s := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &s); err != nil {
			return false, false
		}
	}
	switch s {
	case "true", "1", "false", "0":
		b, _ := strconv.ParseBool(s)
		return b, true
	default:
		return false, false
	}
}
