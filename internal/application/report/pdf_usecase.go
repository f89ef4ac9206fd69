package report

import (
	"context"
	"fmt"

	"github.com/jhoicas/pos-reports/internal/application/dto"
)

// PDFUseCase exporta el reporte de un periodo como PDF.
type PDFUseCase struct {
	reports   Generator
	generator ReportPDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando sus dependencias.
func NewPDFUseCase(reports Generator, generator ReportPDFGenerator) *PDFUseCase {
	return &PDFUseCase{reports: reports, generator: generator}
}

// ExportPDF arma el reporte con los mismos parámetros de GET /api/reports y lo renderiza.
//
// Retorna:
//   - (pdfBytes, filename, nil) si todo sale bien.
//   - domain.ErrInvalidInput    si el periodo es inválido.
func (uc *PDFUseCase) ExportPDF(ctx context.Context, req dto.ReportRequest) (pdfBytes []byte, filename string, err error) {
	rep, err := uc.reports.Generate(ctx, req)
	if err != nil {
		return nil, "", err
	}

	pdfBytes, err = uc.generator.GenerateReportPDF(ctx, rep)
	if err != nil {
		return nil, "", fmt.Errorf("report: pdf: generación fallida: %w", err)
	}

	filename = fmt.Sprintf("reporte_%s_%s_%s.pdf", rep.Type, rep.Period.StartDate, rep.Period.EndDate)
	return pdfBytes, filename, nil
}
