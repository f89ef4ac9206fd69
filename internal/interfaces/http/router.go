package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/pos-reports/internal/application/report"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ReportUC  *report.UseCase
	ReportPDF *report.PDFUseCase
	JWTSecret string
	Logger    zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Reports (protegido: admin o vendedor)
	reports := protected.Group("/reports", RequireRole(RoleAdmin, RoleVendedor))
	var pdf report.Exporter
	if deps.ReportPDF != nil {
		pdf = deps.ReportPDF
	}
	reportHandler := NewReportHandler(deps.ReportUC, pdf, deps.Logger)
	reports.Get("/", reportHandler.Get)
	reports.Get("/pdf", reportHandler.ExportPDF)
}
