package billing

import (
	"github.com/jhoicas/escrow-invoice-api/internal/application/dto"
	"github.com/jhoicas/escrow-invoice-api/internal/domain"
	"github.com/jhoicas/escrow-invoice-api/internal/domain/entity"
	"github.com/jhoicas/escrow-invoice-api/internal/domain/invoice"
)

// EditorUseCase expone la aritmética y el validador del editor de facturas.
type EditorUseCase struct {
	defaultCurrency entity.Currency
}

// NewEditorUseCase construye el caso de uso. defaultCurrency se aplica a facturas sin moneda.
func NewEditorUseCase(defaultCurrency entity.Currency) *EditorUseCase {
	if defaultCurrency == "" {
		defaultCurrency = entity.DefaultCurrency
	}
	return &EditorUseCase{defaultCurrency: defaultCurrency}
}

// DefaultCurrency moneda que se asume cuando la factura no trae una.
func (uc *EditorUseCase) DefaultCurrency() entity.Currency {
	return uc.defaultCurrency
}

// Totals calcula los totales de un conjunto de líneas.
func (uc *EditorUseCase) Totals(in dto.TotalsRequest) dto.TotalsResponse {
	currency := in.Currency
	if currency == "" {
		currency = uc.defaultCurrency
	}
	return BuildTotalsResponse(in.LineItems, invoice.ComputeInvoiceTotal(in.LineItems, in.Tax, in.Discount), currency)
}

// Validate aplica el validador del editor y devuelve también los totales.
func (uc *EditorUseCase) Validate(inv *entity.Invoice) dto.ValidateInvoiceResponse {
	if inv == nil {
		inv = &entity.Invoice{}
	}
	errs := invoice.Validate(inv)
	totals := invoice.ComputeTotals(inv)
	return dto.ValidateInvoiceResponse{
		Valid:  errs.Valid(),
		Errors: errs,
		Totals: BuildTotalsResponse(inv.LineItems, totals, inv.CurrencyOr(uc.defaultCurrency)),
	}
}

// BuildTotalsResponse arma la respuesta con totales de línea y montos formateados.
func BuildTotalsResponse(items []entity.LineItem, totals invoice.Totals, currency entity.Currency) dto.TotalsResponse {
	lineTotals := make([]string, 0, len(items))
	for _, li := range items {
		lineTotals = append(lineTotals, invoice.ComputeLineTotal(li.Qty, li.UnitPrice).StringFixed(2))
	}
	return dto.TotalsResponse{
		Totals:     totals,
		LineTotals: lineTotals,
		Currency:   currency,
		Formatted: dto.FormattedTotals{
			LinesSum: invoice.FormatAmount(totals.LinesSum, currency),
			Tax:      invoice.FormatAmount(totals.TaxAmount, currency),
			Discount: invoice.FormatAmount(totals.DiscountAmount, currency),
			Total:    invoice.FormatAmount(totals.Total, currency),
		},
	}
}

// EditorValidationError convierte los errores del editor en un error clasificado.
// Devuelve nil si no hay errores.
func EditorValidationError(errs invoice.FieldErrors) error {
	if errs.Valid() {
		return nil
	}
	code := domain.CodeInvalidInput
	if errs.HasAmountMismatch() {
		code = domain.CodeAmountMismatch
	}
	fields := make([]domain.FieldViolation, 0, len(errs))
	for _, k := range errs.Keys() {
		fields = append(fields, domain.FieldViolation{Field: k, Message: errs[k]})
	}
	return &domain.ValidationError{Code: code, Fields: fields}
}
