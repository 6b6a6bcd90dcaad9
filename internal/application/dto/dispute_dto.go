package dto

import "encoding/json"

// ReleaseMilestoneRequest body para POST /api/invoices/:id/milestones/release.
// InvoiceID llega por parámetro de ruta.
type ReleaseMilestoneRequest struct {
	InvoiceID   string `json:"-"`
	MilestoneID string `json:"milestoneId"`
	ClientKey   string `json:"clientKey"`
}

// RaiseDisputeRequest body para POST /api/invoices/:id/disputes.
type RaiseDisputeRequest struct {
	InvoiceID string `json:"-"`
	RaisedBy  string `json:"raisedBy"`
	Reason    string `json:"reason"`
	Evidence  string `json:"evidence,omitempty"`
}

// ResolveDisputeRequest body para POST /api/disputes/:id/resolve.
// FavorClient se conserva en crudo para distinguir ausente de false y aceptar "true"/"1".
type ResolveDisputeRequest struct {
	DisputeID     string          `json:"-"`
	Resolution    string          `json:"resolution"`
	FavorClient   json.RawMessage `json:"favorClient"`
	ArbitratorKey string          `json:"arbitratorKey"`
}

// PreflightResponse respuesta de los endpoints de pre-validación de acciones firmadas en la wallet.
// Payload es la petición saneada; las claves privadas nunca se devuelven.
type PreflightResponse struct {
	Action  string         `json:"action"`
	Status  string         `json:"status"`
	Payload map[string]any `json:"payload"`
}

// WalletCheckResponse respuesta de GET /api/wallets/:wallet/check.
type WalletCheckResponse struct {
	Wallet  string `json:"wallet"`
	Valid   bool   `json:"valid"`
	Network string `json:"network"`
}
