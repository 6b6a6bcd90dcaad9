package validation_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/escrow-invoice-api/internal/application/dto"
	"github.com/jhoicas/escrow-invoice-api/internal/application/validation"
	"github.com/jhoicas/escrow-invoice-api/internal/domain"
	"github.com/jhoicas/escrow-invoice-api/internal/domain/money"
)

var (
	clientAddr     = "SP" + strings.Repeat("K", 40)
	arbitratorAddr = "ST" + strings.Repeat("9", 38)
)

func item(desc, qty, price string) dto.DealLineItem {
	return dto.DealLineItem{Description: desc, Qty: money.ParseNumeric(qty), UnitPrice: money.ParseNumeric(price)}
}

func validDeal() *dto.CreateDealRequest {
	return &dto.CreateDealRequest{
		Description:   "Website redesign, phase one",
		ClientAddress: clientAddr,
		TotalAmount:   money.ParseNumeric("300"),
		Currency:      "STX",
		LineItems:     []dto.DealLineItem{item("Consulting", "2", "150.00")},
	}
}

func violations(t *testing.T, err error) (*domain.ValidationError, map[string]string) {
	t.Helper()
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr), "se esperaba *domain.ValidationError, se obtuvo %v", err)
	byField := map[string]string{}
	for _, f := range verr.Fields {
		if _, dup := byField[f.Field]; !dup {
			byField[f.Field] = f.Message
		}
	}
	return verr, byField
}

func TestCreateInvoice_Valido(t *testing.T) {
	assert.NoError(t, validation.CreateInvoice(validDeal()))
}

func TestCreateInvoice_Tolerancia(t *testing.T) {
	req := validDeal()
	req.TotalAmount = money.ParseNumeric("100.00")
	req.LineItems = []dto.DealLineItem{item("Audit", "1", "100.01")}
	assert.NoError(t, validation.CreateInvoice(req), "100.01 frente a 100.00 está en el límite")

	req.LineItems = []dto.DealLineItem{item("Audit", "1", "100.02")}
	err := validation.CreateInvoice(req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrAmountMismatch))
	assert.Equal(t, domain.CodeAmountMismatch, domain.CodeOf(err))
}

func TestCreateInvoice_Descuadre(t *testing.T) {
	req := validDeal()
	req.TotalAmount = money.ParseNumeric("400")

	verr, fields := violations(t, validation.CreateInvoice(req))
	assert.Equal(t, domain.CodeAmountMismatch, verr.Code)
	assert.Equal(t, "Total amount 400 does not match line items sum 300", fields["totalAmount"])
}

func TestCreateInvoice_ExponenteFueraDeRango(t *testing.T) {
	req := validDeal()
	req.TotalAmount = money.ParseNumeric("1e-30000000")
	req.LineItems = []dto.DealLineItem{item("Consulting", "1", "1e-30000000")}

	verr, fields := violations(t, validation.CreateInvoice(req))
	assert.Equal(t, domain.CodeInvalidInput, verr.Code)
	assert.Equal(t, "Total amount must be greater than 0", fields["totalAmount"])
	assert.Equal(t, "Line item unit price must be non-negative", fields["lineItems[0].unitPrice"])
}

func TestCreateInvoice_PrecioCeroValidoEnBorde(t *testing.T) {
	req := validDeal()
	req.LineItems = append(req.LineItems, item("Onboarding", "1", "0"))
	assert.NoError(t, validation.CreateInvoice(req))
}

func TestCreateInvoice_SinLineas(t *testing.T) {
	req := validDeal()
	req.LineItems = nil

	verr, fields := violations(t, validation.CreateInvoice(req))
	assert.Equal(t, domain.CodeInvalidInput, verr.Code)
	assert.Equal(t, "At least one line item is required", fields["lineItems"])
	assert.Equal(t, "At least one line item is required", fields["totalAmount"])
}

func TestCreateInvoice_AcumulaViolaciones(t *testing.T) {
	req := &dto.CreateDealRequest{
		Description:       "short",
		ClientAddress:     "sp" + strings.Repeat("k", 40),
		ArbitratorAddress: "SP" + strings.Repeat("K", 37),
		TotalAmount:       money.ParseNumeric("-3"),
		Currency:          "EUR",
		LineItems: []dto.DealLineItem{
			item("", "0", "-1"),
		},
	}
	verr, fields := violations(t, validation.CreateInvoice(req))
	assert.Equal(t, domain.CodeInvalidInput, verr.Code, "monto inválido no se compara contra las líneas como descuadre")
	assert.Equal(t, "Description must be between 10 and 5000 characters", fields["description"])
	assert.Equal(t, "Invalid Stacks address format", fields["clientAddress"])
	assert.Equal(t, "Invalid Stacks address format", fields["arbitratorAddress"])
	assert.NotContains(t, fields, "contractorAddress")
	assert.Equal(t, "Invalid currency", fields["currency"])
	assert.Equal(t, "Line item description is required", fields["lineItems[0].description"])
	assert.Equal(t, "Line item quantity must be greater than 0", fields["lineItems[0].qty"])
	assert.Equal(t, "Line item unit price must be non-negative", fields["lineItems[0].unitPrice"])
	assert.Contains(t, fields, "totalAmount")
}

func TestCreateInvoice_AliasJSON(t *testing.T) {
	body := `{
		"description": "Smart contract audit engagement",
		"clientAddress": "` + clientAddr + `",
		"arbitratorAddress": "` + arbitratorAddr + `",
		"totalAmount": "75.50",
		"line_items": [
			{"description": "Review", "quantity": "3", "unit_price": 20},
			{"description": "Report", "qty": 1, "price": "15.5"}
		]
	}`
	var req dto.CreateDealRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	require.Len(t, req.LineItems, 2)
	assert.NoError(t, validation.CreateInvoice(&req))
}

func TestCreateInvoice_Nil(t *testing.T) {
	assert.Error(t, validation.CreateInvoice(nil))
}

func TestRaiseDispute(t *testing.T) {
	ok := &dto.RaiseDisputeRequest{InvoiceID: "inv-1", RaisedBy: clientAddr, Reason: "Work was not delivered"}
	assert.NoError(t, validation.RaiseDispute(ok))

	_, fields := violations(t, validation.RaiseDispute(&dto.RaiseDisputeRequest{
		RaisedBy: "nope",
		Reason:   "meh",
		Evidence: strings.Repeat("x", 5001),
	}))
	assert.Equal(t, "Invoice ID is required", fields["id"])
	assert.Equal(t, "Invalid Stacks address format", fields["raisedBy"])
	assert.Equal(t, "Reason must be between 10 and 1000 characters", fields["reason"])
	assert.Equal(t, "Evidence must not exceed 5000 characters", fields["evidence"])
}

func TestResolveDispute(t *testing.T) {
	ok := &dto.ResolveDisputeRequest{
		DisputeID:     "d-1",
		Resolution:    "Client receives a full refund",
		FavorClient:   json.RawMessage(`"true"`),
		ArbitratorKey: "key",
	}
	assert.NoError(t, validation.ResolveDispute(ok))

	_, fields := violations(t, validation.ResolveDispute(&dto.ResolveDisputeRequest{
		DisputeID:   "d-1",
		Resolution:  "Client receives a full refund",
		FavorClient: json.RawMessage(`"yes"`),
	}))
	assert.Equal(t, "favorClient must be a boolean", fields["favorClient"])
	assert.Equal(t, "Arbitrator private key is required", fields["arbitratorKey"])
}

func TestReleaseMilestone(t *testing.T) {
	_, fields := violations(t, validation.ReleaseMilestone(&dto.ReleaseMilestoneRequest{InvoiceID: "inv-1"}))
	assert.Equal(t, "Milestone ID is required", fields["milestoneId"])
	assert.Equal(t, "Client private key is required", fields["clientKey"])
	assert.NotContains(t, fields, "id")
}

func TestWalletAddressYInvoiceID(t *testing.T) {
	assert.NoError(t, validation.WalletAddress(clientAddr))
	_, fields := violations(t, validation.WalletAddress(""))
	assert.Equal(t, "Wallet address is required", fields["wallet"])
	_, fields = violations(t, validation.WalletAddress("SP"+strings.Repeat("K", 37)))
	assert.Equal(t, "Invalid Stacks address format", fields["wallet"])

	assert.NoError(t, validation.InvoiceID("abc"))
	assert.Error(t, validation.InvoiceID(""))
}

func TestAIParse(t *testing.T) {
	assert.NoError(t, validation.AIParse(&dto.ParseInvoiceRequest{Description: "Invoice from Acme to Bob for 2 hours at 50 USD"}))
	_, fields := violations(t, validation.AIParse(&dto.ParseInvoiceRequest{Description: "too short"}))
	assert.Equal(t, "Description must be between 20 and 10000 characters", fields["description"])
}

func TestParseBoolFlag(t *testing.T) {
	cases := map[string][2]bool{
		`true`:    {true, true},
		`false`:   {false, true},
		`"1"`:     {true, true},
		`0`:       {false, true},
		`"yes"`:   {false, false},
		`null`:    {false, false},
		``:        {false, false},
		`"false"`: {false, true},
	}
	for raw, want := range cases {
		b, ok := validation.ParseBoolFlag(json.RawMessage(raw))
		assert.Equal(t, want[0], b, raw)
		assert.Equal(t, want[1], ok, raw)
	}
}

func TestSanitizeInput(t *testing.T) {
	assert.Equal(t, "scriptalert(1)/script", validation.SanitizeInput("  <script>alert(1)</script> "))
}
