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

	appreport "github.com/jhoicas/pos-reports/internal/application/report"
	infrapdf "github.com/jhoicas/pos-reports/internal/infrastructure/pdf"
	"github.com/jhoicas/pos-reports/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/pos-reports/internal/interfaces/http"
	"github.com/jhoicas/pos-reports/pkg/config"
	"github.com/jhoicas/pos-reports/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	loc, err := cfg.Report.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("zona horaria de reportes")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	invoiceRepo := postgres.NewInvoiceRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	damagedRepo := postgres.NewDamagedItemRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)

	reportUC := appreport.NewReportUseCase(
		invoiceRepo, productRepo, damagedRepo, expenseRepo,
		appreport.Config{Location: loc, TopProducts: cfg.Report.TopProducts},
		log.Component("report"),
	)

	// PDF: exportación del reporte
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name)
	reportPDFUC := appreport.NewPDFUseCase(reportUC, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "POS Reports API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ReportUC:  reportUC,
		ReportPDF: reportPDFUC,
		JWTSecret: cfg.JWT.Secret,
		Logger:    log.Component("http"),
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
