package billing_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/escrow-invoice-api/internal/application/billing"
	"github.com/jhoicas/escrow-invoice-api/internal/application/dto"
	"github.com/jhoicas/escrow-invoice-api/internal/domain"
	"github.com/jhoicas/escrow-invoice-api/internal/domain/entity"
	"github.com/jhoicas/escrow-invoice-api/internal/domain/invoice"
	"github.com/jhoicas/escrow-invoice-api/internal/domain/money"
)

var clientAddr = "SP" + strings.Repeat("3", 40)

func num(s string) money.Numeric { return money.ParseNumeric(s) }

func editorInvoice() *entity.Invoice {
	return &entity.Invoice{
		InvoiceNumber: "INV/2024-07",
		Date:          "2024-07-01",
		VendorName:    "Acme Studio",
		BuyerName:     "Satoshi Labs",
		Tax:           num("10"),
		Discount:      num("5"),
		TotalAmount:   num("305"),
		LineItems: []entity.LineItem{
			{Description: "Consulting", Qty: num("2"), UnitPrice: num("150")},
		},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// DealUseCase
// ──────────────────────────────────────────────────────────────────────────────

func TestPrepareDeal_OK(t *testing.T) {
	uc := billing.NewDealUseCase(entity.CurrencySTX, func() string { return "draft-1" }, nil)
	req := &dto.CreateDealRequest{
		Description:   "Landing page <b>build</b>",
		ClientAddress: clientAddr,
		TotalAmount:   num("300"),
		LineItems: []dto.DealLineItem{
			{Description: "Design", Qty: num("2"), UnitPrice: num("100")},
			{Description: "Setup", Quantity: num("1"), Price: num("100")},
			{Description: "Kickoff call", Qty: num("1"), UnitPrice: num("0")},
		},
	}

	preview, err := uc.PrepareDeal(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "draft-1", preview.DraftID)
	assert.Equal(t, billing.StatusReadyToSign, preview.Status)
	assert.Equal(t, "Landing page bbuild/b", preview.Description, "se eliminan < y >")
	assert.Equal(t, "mainnet", preview.Network)
	assert.Equal(t, entity.CurrencySTX, preview.Currency, "sin moneda se usa la de configuración")
	assert.Equal(t, "STX 300.00", preview.FormattedTotal)
	require.Len(t, preview.LineItems, 3)
	assert.Equal(t, "200.00", preview.LineItems[0].LineTotal.StringFixed(2))
	assert.Equal(t, "100.00", preview.LineItems[1].LineTotal.StringFixed(2))
	assert.Equal(t, "300.00", preview.LinesSum.StringFixed(2))
	assert.Len(t, preview.Fingerprint, 96)

	again, err := uc.PrepareDeal(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, preview.Fingerprint, again.Fingerprint, "la huella es determinista")
}

func TestPrepareDeal_Descuadre(t *testing.T) {
	uc := billing.NewDealUseCase("", nil, nil)
	req := &dto.CreateDealRequest{
		Description:   "Consulting engagement",
		ClientAddress: clientAddr,
		TotalAmount:   num("400"),
		LineItems:     []dto.DealLineItem{{Description: "Consulting", Qty: num("2"), UnitPrice: num("150.00")}},
	}
	preview, err := uc.PrepareDeal(context.Background(), req)
	assert.Nil(t, preview)
	assert.True(t, errors.Is(err, domain.ErrAmountMismatch))
	assert.Equal(t, domain.CodeAmountMismatch, domain.CodeOf(err))
}

func TestPrepareDeal_IDPorDefecto(t *testing.T) {
	uc := billing.NewDealUseCase("", nil, nil)
	req := &dto.CreateDealRequest{
		Description:   "Consulting engagement",
		ClientAddress: clientAddr,
		TotalAmount:   num("1"),
		Currency:      "USD",
		LineItems:     []dto.DealLineItem{{Description: "x", Qty: num("1"), UnitPrice: num("1")}},
	}
	preview, err := uc.PrepareDeal(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, preview.DraftID, 36)
}

// ──────────────────────────────────────────────────────────────────────────────
// EditorUseCase
// ──────────────────────────────────────────────────────────────────────────────

func TestEditor_Totals(t *testing.T) {
	uc := billing.NewEditorUseCase(entity.CurrencyUSD)
	resp := uc.Totals(dto.TotalsRequest{
		LineItems: []entity.LineItem{{Description: "a", Qty: num("3"), UnitPrice: num("0.005")}},
		Tax:       num("1"),
	})
	assert.Equal(t, []string{"0.02"}, resp.LineTotals)
	assert.Equal(t, "USD 1.02", resp.Formatted.Total)
	assert.Equal(t, "USD 0.00", resp.Formatted.Discount)
	assert.Equal(t, entity.CurrencyUSD, resp.Currency)
}

func TestEditor_Validate(t *testing.T) {
	uc := billing.NewEditorUseCase("")
	ok := uc.Validate(editorInvoice())
	assert.True(t, ok.Valid)
	assert.Empty(t, ok.Errors)
	assert.Equal(t, "USD 305.00", ok.Totals.Formatted.Total)

	bad := editorInvoice()
	bad.TotalAmount = num("400")
	resp := uc.Validate(bad)
	assert.False(t, resp.Valid)
	assert.Contains(t, resp.Errors, invoice.KeyTotalAmount)

	empty := uc.Validate(nil)
	assert.False(t, empty.Valid)
}

func TestEditorValidationError(t *testing.T) {
	assert.NoError(t, billing.EditorValidationError(invoice.FieldErrors{}))

	bad := editorInvoice()
	bad.TotalAmount = num("400")
	err := billing.EditorValidationError(invoice.Validate(bad))
	assert.Equal(t, domain.CodeAmountMismatch, domain.CodeOf(err))

	bad.BuyerName = ""
	var verr *domain.ValidationError
	require.True(t, errors.As(billing.EditorValidationError(invoice.Validate(bad)), &verr))
	assert.Equal(t, "buyer_name", verr.Fields[0].Field, "campos en orden alfabético")
}

// ──────────────────────────────────────────────────────────────────────────────
// PDFUseCase
// ──────────────────────────────────────────────────────────────────────────────

type stubGenerator struct {
	calls  int
	got    *entity.Invoice
	totals invoice.Totals
	err    error
}

func (s *stubGenerator) GenerateInvoicePDF(_ context.Context, inv *entity.Invoice, totals invoice.Totals) ([]byte, error) {
	s.calls++
	s.got = inv
	s.totals = totals
	if s.err != nil {
		return nil, s.err
	}
	return []byte("%PDF-1.3"), nil
}

func TestPreviewPDF_OK(t *testing.T) {
	gen := &stubGenerator{}
	uc := billing.NewPDFUseCase(gen, entity.CurrencySBTC)

	pdf, filename, err := uc.PreviewPDF(context.Background(), editorInvoice())
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.3"), pdf)
	assert.Equal(t, "factura_INV_2024-07.pdf", filename)
	assert.Equal(t, entity.CurrencySBTC, gen.got.Currency)
	assert.Equal(t, "305.00", gen.totals.Total.StringFixed(2))
}

func TestPreviewPDF_InvalidaNoGenera(t *testing.T) {
	gen := &stubGenerator{}
	uc := billing.NewPDFUseCase(gen, "")
	inv := editorInvoice()
	inv.VendorName = ""

	_, _, err := uc.PreviewPDF(context.Background(), inv)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Zero(t, gen.calls)
}

func TestPreviewPDF_ErrorGenerador(t *testing.T) {
	gen := &stubGenerator{err: errors.New("fuente no encontrada")}
	uc := billing.NewPDFUseCase(gen, "")
	inv := editorInvoice()
	inv.InvoiceNumber = ""

	_, _, err := uc.PreviewPDF(context.Background(), inv)
	assert.ErrorContains(t, err, "fuente no encontrada")
	assert.Equal(t, domain.CodeInternal, domain.CodeOf(err))
}

// ──────────────────────────────────────────────────────────────────────────────
// PreflightUseCase
// ──────────────────────────────────────────────────────────────────────────────

func TestPreflight(t *testing.T) {
	uc := billing.NewPreflightUseCase()

	resp, err := uc.RaiseDispute(&dto.RaiseDisputeRequest{
		InvoiceID: "inv-9", RaisedBy: clientAddr, Reason: "  Deliverable <missing>  ",
	})
	require.NoError(t, err)
	assert.Equal(t, billing.ActionRaiseDispute, resp.Action)
	assert.Equal(t, "Deliverable missing", resp.Payload["reason"])
	assert.NotContains(t, resp.Payload, "evidence")

	rel, err := uc.ReleaseMilestone(&dto.ReleaseMilestoneRequest{InvoiceID: "inv-9", MilestoneID: "m1", ClientKey: "secret"})
	require.NoError(t, err)
	assert.NotContains(t, rel.Payload, "clientKey", "la clave privada nunca se devuelve")

	_, err = uc.ResolveDispute(&dto.ResolveDisputeRequest{DisputeID: "d1", Resolution: "short"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	w, err := uc.CheckWallet("ST" + strings.Repeat("Z", 39))
	require.NoError(t, err)
	assert.Equal(t, "testnet", w.Network)
}
