package report

import (
	"context"

	"github.com/jhoicas/pos-reports/internal/application/dto"
)

// ReportPDFGenerator renderiza un reporte ya armado como documento PDF.
// La implementación vive en infraestructura (maroto).
type ReportPDFGenerator interface {
	GenerateReportPDF(ctx context.Context, rep *dto.ReportResponse) ([]byte, error)
}

// Generator contrato del caso de uso que arma reportes; lo consume el exportador PDF y el handler HTTP.
type Generator interface {
	Generate(ctx context.Context, req dto.ReportRequest) (*dto.ReportResponse, error)
}

// Exporter contrato de la exportación PDF que consume el handler HTTP.
type Exporter interface {
	ExportPDF(ctx context.Context, req dto.ReportRequest) (pdfBytes []byte, filename string, err error)
}

var (
	_ Generator = (*UseCase)(nil)
	_ Exporter  = (*PDFUseCase)(nil)
)
