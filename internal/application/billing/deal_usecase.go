package billing

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/escrow-invoice-api/internal/application/dto"
	"github.com/jhoicas/escrow-invoice-api/internal/application/validation"
	"github.com/jhoicas/escrow-invoice-api/internal/domain/entity"
	"github.com/jhoicas/escrow-invoice-api/internal/domain/invoice"
	"github.com/jhoicas/escrow-invoice-api/internal/domain/money"
	"github.com/jhoicas/escrow-invoice-api/pkg/logger"
	"github.com/jhoicas/escrow-invoice-api/pkg/stacks"
)

// StatusReadyToSign estado de un deal validado que espera la firma de la wallet.
const StatusReadyToSign = "ready_to_sign"

// DealUseCase prepara un deal de escrow a partir de la factura enviada por el cliente.
// El envío de la transacción a la blockchain lo hace la wallet, fuera de este servicio.
type DealUseCase struct {
	defaultCurrency entity.Currency
	newID           IDGenerator
	log             *logger.Logger
}

// NewDealUseCase construye el caso de uso. Si newID es nil se usa uuid v4.
func NewDealUseCase(defaultCurrency entity.Currency, newID IDGenerator, log *logger.Logger) *DealUseCase {
	if newID == nil {
		newID = func() string { return uuid.New().String() }
	}
	if defaultCurrency == "" {
		defaultCurrency = entity.DefaultCurrency
	}
	if log == nil {
		log = logger.Nop()
	}
	return &DealUseCase{defaultCurrency: defaultCurrency, newID: newID, log: log}
}

// PrepareDeal valida la petición (reglas de borde), calcula totales y arma la vista previa.
// Errores: *domain.ValidationError con código INVALID_INPUT o AMOUNT_MISMATCH.
func (uc *DealUseCase) PrepareDeal(_ context.Context, in *dto.CreateDealRequest) (*dto.DealPreview, error) {
	if err := validation.CreateInvoice(in); err != nil {
		return nil, fmt.Errorf("preparar deal: %w", err)
	}

	currency := entity.Currency(in.Currency)
	if currency == "" {
		currency = uc.defaultCurrency
	}

	lines := make([]dto.LineItemPreview, 0, len(in.LineItems))
	items := make([]entity.LineItem, 0, len(in.LineItems))
	for _, li := range in.LineItems {
		item := li.ToEntity()
		items = append(items, item)
		lines = append(lines, dto.LineItemPreview{
			Description: validation.SanitizeInput(item.Description),
			Qty:         money.Coerce(item.Qty),
			UnitPrice:   money.Coerce(item.UnitPrice),
			LineTotal:   invoice.ComputeLineTotal(item.Qty, item.UnitPrice),
		})
	}
	linesSum := invoice.LineSum(items)
	total := money.Round2(in.TotalAmount.Value)

	fingerprint, err := invoice.Fingerprint(invoice.FingerprintParams{
		ClientAddress:     in.ClientAddress,
		ContractorAddress: in.ContractorAddress,
		ArbitratorAddress: in.ArbitratorAddress,
		Currency:          currency,
		TotalAmount:       total,
		LineItems:         items,
	})
	if err != nil {
		return nil, fmt.Errorf("preparar deal: %w", err)
	}

	preview := &dto.DealPreview{
		DraftID:           uc.newID(),
		Status:            StatusReadyToSign,
		Description:       validation.SanitizeInput(in.Description),
		ClientAddress:     in.ClientAddress,
		ContractorAddress: in.ContractorAddress,
		ArbitratorAddress: in.ArbitratorAddress,
		Network:           stacks.Network(in.ClientAddress),
		Currency:          currency,
		LineItems:         lines,
		TotalAmount:       total,
		LinesSum:          linesSum,
		FormattedTotal:    invoice.FormatAmount(total, currency),
		Fingerprint:       fingerprint,
	}

	uc.log.Info().
		Str("draft_id", preview.DraftID).
		Str("network", preview.Network).
		Str("fingerprint", fingerprint).
		Str("total", preview.FormattedTotal).
		Int("lines", len(lines)).
		Msg("deal preparado para firma")

	return preview, nil
}
