package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	Limits  LimitsConfig
	Invoice InvoiceConfig
	AI      AIConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// IsDevelopment indica si se exponen detalles de depuración (stack en errores, consola legible).
func (c AppConfig) IsDevelopment() bool {
	return c.Env == "development"
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host      string
	Port      int
	BodyLimit int // bytes
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LimitsConfig límite de peticiones por IP sobre /api.
type LimitsConfig struct {
	RateLimitMax    int
	RateLimitWindow time.Duration
}

// InvoiceConfig valores por defecto del editor de facturas.
type InvoiceConfig struct {
	DefaultCurrency string
}

// AIConfig proveedor LLM para interpretar facturas en texto libre.
type AIConfig struct {
	Provider        string // anthropic | gemini
	AnthropicAPIKey string
	AnthropicModel  string
	GeminiAPIKey    string
	GeminiModel     string
	Timeout         time.Duration
}

var (
	supportedCurrencies = []string{"sBTC", "STX", "USD"}
	supportedProviders  = []string{"anthropic", "gemini"}
)

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, ANTHROPIC_API_KEY, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo .env en el directorio de trabajo
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	// También intenta config.env
	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.MergeInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := FromViper(v)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromViper construye la configuración aplicando valores por defecto.
func FromViper(v *viper.Viper) *Config {
	return &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "escrow-invoice-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host:      getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:      getInt(v, "HTTP_PORT", 8080),
			BodyLimit: getInt(v, "HTTP_BODY_LIMIT", 1<<20),
		},
		Limits: LimitsConfig{
			RateLimitMax:    getInt(v, "RATE_LIMIT_MAX", 60),
			RateLimitWindow: time.Duration(getInt(v, "RATE_LIMIT_WINDOW_SECONDS", 60)) * time.Second,
		},
		Invoice: InvoiceConfig{
			DefaultCurrency: getString(v, "INVOICE_DEFAULT_CURRENCY", "USD"),
		},
		AI: AIConfig{
			Provider:        strings.ToLower(getString(v, "AI_PROVIDER", "anthropic")),
			AnthropicAPIKey: getString(v, "ANTHROPIC_API_KEY", ""),
			AnthropicModel:  getString(v, "ANTHROPIC_MODEL", "claude-3-5-haiku-20241022"),
			GeminiAPIKey:    getString(v, "GEMINI_API_KEY", ""),
			GeminiModel:     getString(v, "GEMINI_MODEL", "gemini-1.5-flash"),
			Timeout:         time.Duration(getInt(v, "AI_TIMEOUT_SECONDS", 10)) * time.Second,
		},
	}
}

// Validate rechaza combinaciones que el servidor no puede atender.
func (c *Config) Validate() error {
	if !contains(supportedCurrencies, c.Invoice.DefaultCurrency) {
		return fmt.Errorf("config: INVOICE_DEFAULT_CURRENCY %q no soportada (use %s)",
			c.Invoice.DefaultCurrency, strings.Join(supportedCurrencies, ", "))
	}
	if !contains(supportedProviders, c.AI.Provider) {
		return fmt.Errorf("config: AI_PROVIDER %q no soportado (use %s)",
			c.AI.Provider, strings.Join(supportedProviders, ", "))
	}
	if c.HTTP.Port <= 0 {
		return fmt.Errorf("config: HTTP_PORT inválido: %d", c.HTTP.Port)
	}
	if c.Limits.RateLimitMax <= 0 || c.Limits.RateLimitWindow <= 0 {
		return fmt.Errorf("config: RATE_LIMIT_MAX y RATE_LIMIT_WINDOW_SECONDS deben ser positivos")
	}
	if c.AI.Timeout <= 0 {
		return fmt.Errorf("config: AI_TIMEOUT_SECONDS debe ser positivo")
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
