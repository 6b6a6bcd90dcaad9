package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/escrow-invoice-api/docs"
	"github.com/jhoicas/escrow-invoice-api/internal/application/billing"
	"github.com/jhoicas/escrow-invoice-api/internal/application/ports"
	"github.com/jhoicas/escrow-invoice-api/internal/application/usecase"
	"github.com/jhoicas/escrow-invoice-api/internal/domain/entity"
	infraai "github.com/jhoicas/escrow-invoice-api/internal/infrastructure/ai"
	infrapdf "github.com/jhoicas/escrow-invoice-api/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/escrow-invoice-api/internal/interfaces/http"
	"github.com/jhoicas/escrow-invoice-api/pkg/config"
	"github.com/jhoicas/escrow-invoice-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	currency := entity.Currency(cfg.Invoice.DefaultCurrency)

	editorUC := billing.NewEditorUseCase(currency)
	dealUC := billing.NewDealUseCase(currency, nil, log.Named("deal"))
	pdfUC := billing.NewPDFUseCase(infrapdf.NewMarotoPDFGenerator(), currency)
	preflightUC := billing.NewPreflightUseCase()

	// IA: sin API key el endpoint responde 503 en vez de fallar al arrancar.
	var aiUC *usecase.AIUseCase
	if parser := newInvoiceParser(cfg.AI); parser != nil {
		aiUC = usecase.NewAIUseCase(parser, cfg.AI.Timeout, currency)
	} else {
		log.Warn().Str("provider", cfg.AI.Provider).Msg("IA sin API key; /api/ai deshabilitado")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.HTTP.BodyLimit,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler(log.Named("http"), cfg.App.IsDevelopment()),
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Named("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Escrow Invoice API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		EditorUC:        editorUC,
		DealUC:          dealUC,
		PDFUC:           pdfUC,
		PreflightUC:     preflightUC,
		AIUC:            aiUC,
		RateLimitMax:    cfg.Limits.RateLimitMax,
		RateLimitWindow: cfg.Limits.RateLimitWindow,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// newInvoiceParser elige el adaptador LLM según AI_PROVIDER. Devuelve nil si falta la API key.
func newInvoiceParser(cfg config.AIConfig) ports.InvoiceParser {
	switch cfg.Provider {
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			return nil
		}
		return infraai.NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel)
	default:
		if cfg.AnthropicAPIKey == "" {
			return nil
		}
		return infraai.NewAnthropicService(cfg.AnthropicAPIKey, cfg.AnthropicModel)
	}
}
