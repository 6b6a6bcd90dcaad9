package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/jhoicas/escrow-invoice-api/internal/application/billing"
	"github.com/jhoicas/escrow-invoice-api/internal/application/dto"
	"github.com/jhoicas/escrow-invoice-api/internal/application/validation"
	"github.com/jhoicas/escrow-invoice-api/internal/domain"
	"github.com/jhoicas/escrow-invoice-api/internal/domain/entity"
	"github.com/jhoicas/escrow-invoice-api/pkg/logger"
	"github.com/jhoicas/escrow-invoice-api/pkg/stacks"
)

// exitInvalid código de salida cuando la entrada no pasa la validación.
const exitInvalid = 1

func newApp() *cli.App {
	return &cli.App{
		Name:  "invoicectl",
		Usage: "totales y validación de facturas de escrow",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "currency", Value: string(entity.DefaultCurrency), Usage: "moneda por defecto (sBTC, STX, USD)"},
			&cli.StringFlag{Name: "log-level", Value: "warn", Usage: "nivel de log en stderr"},
		},
		// La salida del proceso la decide main; aquí solo se devuelve el error.
		ExitErrHandler: func(*cli.Context, error) {},
		Commands: []*cli.Command{
			{
				Name:      "totals",
				Usage:     "calcula subtotal, impuesto, descuento y total",
				ArgsUsage: "[archivo.json]",
				Action:    runTotals,
			},
			{
				Name:      "validate",
				Usage:     "valida una factura del editor o, con --boundary, el body de create-deal",
				ArgsUsage: "[archivo.json]",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "boundary", Usage: "usar las reglas de borde de la API"},
				},
				Action: runValidate,
			},
			{
				Name:      "check-address",
				Usage:     "comprueba el formato de una dirección Stacks",
				ArgsUsage: "<dirección>",
				Action:    runCheckAddress,
			},
		},
	}
}

func newLogger(c *cli.Context) *logger.Logger {
	return logger.New(logger.Config{Level: c.String("log-level"), Output: c.App.ErrWriter})
}

func currency(c *cli.Context) (entity.Currency, error) {
	cur := entity.Currency(c.String("currency"))
	if !cur.IsSupported() {
		return "", cli.Exit(fmt.Sprintf("moneda no soportada: %s", cur), 2)
	}
	return cur, nil
}

func runTotals(c *cli.Context) error {
	cur, err := currency(c)
	if err != nil {
		return err
	}
	var in dto.TotalsRequest
	if err := readInput(c, &in); err != nil {
		return err
	}
	return writeJSON(c.App.Writer, billing.NewEditorUseCase(cur).Totals(in))
}

func runValidate(c *cli.Context) error {
	log := newLogger(c)
	if c.Bool("boundary") {
		var in dto.CreateDealRequest
		if err := readInput(c, &in); err != nil {
			return err
		}
		if err := validation.CreateInvoice(&in); err != nil {
			code := domain.CodeOf(err)
			log.Warn().Str("code", string(code)).Msg("deal inválido")
			resp := dto.ValidationErrorResponse{Code: string(code), UserMessage: domain.UserMessage(code)}
			var verr *domain.ValidationError
			if errors.As(err, &verr) {
				resp.Errors = verr.Fields
			}
			if werr := writeJSON(c.App.Writer, resp); werr != nil {
				return werr
			}
			return cli.Exit("", exitInvalid)
		}
		return writeJSON(c.App.Writer, map[string]bool{"success": true})
	}

	cur, err := currency(c)
	if err != nil {
		return err
	}
	var in dto.InvoiceRequest
	if err := readInput(c, &in); err != nil {
		return err
	}
	resp := billing.NewEditorUseCase(cur).Validate(&in.Invoice)
	if err := writeJSON(c.App.Writer, resp); err != nil {
		return err
	}
	if !resp.Valid {
		log.Warn().Strs("fields", resp.Errors.Keys()).Msg("factura inválida")
		return cli.Exit("", exitInvalid)
	}
	return nil
}

func runCheckAddress(c *cli.Context) error {
	addr := c.Args().First()
	if err := stacks.ValidateAddress(addr); err != nil {
		fmt.Fprintf(c.App.Writer, "inválida: %v\n", err)
		return cli.Exit("", exitInvalid)
	}
	fmt.Fprintf(c.App.Writer, "válida (%s)\n", stacks.Network(addr))
	return nil
}

// readInput decodifica el primer argumento (o stdin) en v.
func readInput(c *cli.Context, v any) error {
	var r io.Reader = c.App.Reader
	if path := c.Args().First(); path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return cli.Exit(fmt.Sprintf("abrir %s: %v", path, err), 2)
		}
		defer f.Close()
		r = f
	}
	if err := json.NewDecoder(r).Decode(v); err != nil {
		return cli.Exit(fmt.Sprintf("JSON inválido: %v", err), 2)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
