package entity

// Currency moneda admitida para un deal en escrow.
type Currency string

const (
	CurrencySBTC Currency = "sBTC"
	CurrencySTX  Currency = "STX"
	CurrencyUSD  Currency = "USD"
)

// DefaultCurrency se usa cuando ni la factura ni la configuración indican una.
const DefaultCurrency = CurrencyUSD

var supportedCurrencies = map[Currency]struct{}{
	CurrencySBTC: {},
	CurrencySTX:  {},
	CurrencyUSD:  {},
}

// IsSupported indica si la moneda pertenece al conjunto {sBTC, STX, USD}.
func (c Currency) IsSupported() bool {
	_, ok := supportedCurrencies[c]
	return ok
}

// SupportedCurrencies lista las monedas en orden estable (para mensajes y docs).
func SupportedCurrencies() []Currency {
	return []Currency{CurrencySBTC, CurrencySTX, CurrencyUSD}
}
