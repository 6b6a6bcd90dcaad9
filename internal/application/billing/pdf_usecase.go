package billing

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/jhoicas/escrow-invoice-api/internal/domain/entity"
	"github.com/jhoicas/escrow-invoice-api/internal/domain/invoice"
)

var unsafeFilenameRe = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// PDFUseCase genera la vista previa en PDF de una factura del editor.
// Solo se genera si la factura pasa el validador del editor.
type PDFUseCase struct {
	generator       InvoicePDFGenerator
	defaultCurrency entity.Currency
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(generator InvoicePDFGenerator, defaultCurrency entity.Currency) *PDFUseCase {
	if defaultCurrency == "" {
		defaultCurrency = entity.DefaultCurrency
	}
	return &PDFUseCase{generator: generator, defaultCurrency: defaultCurrency}
}

// PreviewPDF valida la factura y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)   si todo sale bien.
//   - *domain.ValidationError     si la factura no pasa el validador (INVALID_INPUT o AMOUNT_MISMATCH).
func (uc *PDFUseCase) PreviewPDF(ctx context.Context, inv *entity.Invoice) (pdfBytes []byte, filename string, err error) {
	if err := EditorValidationError(invoice.Validate(inv)); err != nil {
		return nil, "", fmt.Errorf("pdf: %w", err)
	}

	doc := *inv
	doc.Currency = inv.CurrencyOr(uc.defaultCurrency)
	totals := invoice.ComputeTotals(&doc)

	pdfBytes, err = uc.generator.GenerateInvoicePDF(ctx, &doc, totals)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, previewFilename(&doc), nil
}

func previewFilename(inv *entity.Invoice) string {
	base := strings.Trim(unsafeFilenameRe.ReplaceAllString(inv.InvoiceNumber, "_"), "_")
	if base == "" {
		base = "borrador"
	}
	return fmt.Sprintf("factura_%s.pdf", base)
}
