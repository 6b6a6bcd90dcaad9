package billing

import (
	"fmt"

	"github.com/jhoicas/escrow-invoice-api/internal/application/dto"
	"github.com/jhoicas/escrow-invoice-api/internal/application/validation"
	"github.com/jhoicas/escrow-invoice-api/pkg/stacks"
)

// Acciones firmadas en la wallet que se pre-validan en el servidor.
const (
	ActionReleaseMilestone = "release_milestone"
	ActionRaiseDispute     = "raise_dispute"
	ActionResolveDispute   = "resolve_dispute"
)

// PreflightUseCase valida acciones de escrow antes de que la wallet firme la transacción.
// Las claves privadas se exigen como presentes pero nunca se devuelven.
type PreflightUseCase struct{}

// NewPreflightUseCase construye el caso de uso.
func NewPreflightUseCase() *PreflightUseCase { return &PreflightUseCase{} }

// ReleaseMilestone pre-valida la liberación de un hito.
func (uc *PreflightUseCase) ReleaseMilestone(in *dto.ReleaseMilestoneRequest) (*dto.PreflightResponse, error) {
	if err := validation.ReleaseMilestone(in); err != nil {
		return nil, fmt.Errorf("liberar hito: %w", err)
	}
	return ready(ActionReleaseMilestone, map[string]any{
		"invoiceId":   in.InvoiceID,
		"milestoneId": in.MilestoneID,
	}), nil
}

// RaiseDispute pre-valida la apertura de una disputa. Reason y evidence se sanean.
func (uc *PreflightUseCase) RaiseDispute(in *dto.RaiseDisputeRequest) (*dto.PreflightResponse, error) {
	if err := validation.RaiseDispute(in); err != nil {
		return nil, fmt.Errorf("abrir disputa: %w", err)
	}
	payload := map[string]any{
		"invoiceId": in.InvoiceID,
		"raisedBy":  in.RaisedBy,
		"network":   stacks.Network(in.RaisedBy),
		"reason":    validation.SanitizeInput(in.Reason),
	}
	if in.Evidence != "" {
		payload["evidence"] = validation.SanitizeInput(in.Evidence)
	}
	return ready(ActionRaiseDispute, payload), nil
}

// ResolveDispute pre-valida la resolución de una disputa.
func (uc *PreflightUseCase) ResolveDispute(in *dto.ResolveDisputeRequest) (*dto.PreflightResponse, error) {
	if err := validation.ResolveDispute(in); err != nil {
		return nil, fmt.Errorf("resolver disputa: %w", err)
	}
	favor, _ := validation.ParseBoolFlag(in.FavorClient)
	return ready(ActionResolveDispute, map[string]any{
		"disputeId":   in.DisputeID,
		"resolution":  validation.SanitizeInput(in.Resolution),
		"favorClient": favor,
	}), nil
}

// CheckWallet valida el formato de una dirección de wallet.
func (uc *PreflightUseCase) CheckWallet(wallet string) (*dto.WalletCheckResponse, error) {
	if err := validation.WalletAddress(wallet); err != nil {
		return nil, fmt.Errorf("wallet: %w", err)
	}
	return &dto.WalletCheckResponse{Wallet: wallet, Valid: true, Network: stacks.Network(wallet)}, nil
}

func ready(action string, payload map[string]any) *dto.PreflightResponse {
	return &dto.PreflightResponse{Action: action, Status: StatusReadyToSign, Payload: payload}
}
