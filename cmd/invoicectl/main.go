// Command invoicectl ejecuta la aritmética y los validadores de facturas sobre archivos JSON.
//
//	invoicectl totals factura.json
//	invoicectl validate --boundary deal.json
//	invoicectl check-address SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7
//
// Sin archivo (o con "-") se lee de stdin. El código de salida es 1 si la entrada no es válida.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		var ec cli.ExitCoder
		if errors.As(err, &ec) {
			if msg := ec.Error(); msg != "" {
				fmt.Fprintln(os.Stderr, msg)
			}
			os.Exit(ec.ExitCode())
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}
