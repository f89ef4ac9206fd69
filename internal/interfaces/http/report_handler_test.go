package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-reports/internal/application/dto"
	"github.com/jhoicas/pos-reports/internal/application/report"
	"github.com/jhoicas/pos-reports/internal/domain"
	"github.com/jhoicas/pos-reports/internal/domain/entity"
	apphttp "github.com/jhoicas/pos-reports/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Stubs
// ──────────────────────────────────────────────────────────────────────────────

type generatorStub struct {
	got dto.ReportRequest
	rep *dto.ReportResponse
	err error
}

func (s *generatorStub) Generate(_ context.Context, req dto.ReportRequest) (*dto.ReportResponse, error) {
	s.got = req
	return s.rep, s.err
}

type exporterStub struct {
	err error
}

func (s *exporterStub) ExportPDF(context.Context, dto.ReportRequest) ([]byte, string, error) {
	if s.err != nil {
		return nil, "", s.err
	}
	return []byte("%PDF-1.4 demo"), "reporte_daily_2024-05-15_2024-05-15.pdf", nil
}

func sampleResponse() *dto.ReportResponse {
	return &dto.ReportResponse{
		Type:   "daily",
		Period: dto.PeriodDTO{StartDate: "2024-05-15", EndDate: "2024-05-15"},
		Summary: dto.ReportSummaryDTO{
			TotalSales:  decimal.NewFromInt(130),
			TotalProfit: decimal.NewFromInt(32),
			SalesCount:  2,
		},
		ChartData:       []dto.ChartPointDTO{},
		TopProducts:     []dto.TopProductDTO{},
		DetailedReports: []dto.DetailedReportDTO{},
	}
}

func newReportApp(gen *generatorStub, exp *exporterStub) *fiber.App {
	var exporter report.Exporter
	if exp != nil {
		exporter = exp
	}
	h := apphttp.NewReportHandler(gen, exporter, zerolog.Nop())
	app := fiber.New()
	app.Get("/api/reports", h.Get)
	app.Get("/api/reports/pdf", h.ExportPDF)
	return app
}

func get(t *testing.T, app *fiber.App, url string) (*http.Response, []byte) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, url, nil), -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, body
}

// ──────────────────────────────────────────────────────────────────────────────
// GET /api/reports
// ──────────────────────────────────────────────────────────────────────────────

func TestReportHandler_Get_OK(t *testing.T) {
	gen := &generatorStub{rep: sampleResponse()}
	resp, body := get(t, newReportApp(gen, nil), "/api/reports?type=weekly&date=2024-05-15")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, dto.ReportRequest{Type: "weekly", Date: "2024-05-15"}, gen.got)

	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Contains(t, out, "summary")
	assert.Contains(t, out, "chartData")
	assert.Contains(t, out, "topProducts")
	assert.Contains(t, out, "detailedReports")
	summary := out["summary"].(map[string]any)
	assert.Equal(t, "130", summary["totalSales"])
	assert.EqualValues(t, 2, summary["salesCount"])
}

func TestReportHandler_Get_RangoExplicito(t *testing.T) {
	gen := &generatorStub{rep: sampleResponse()}
	resp, _ := get(t, newReportApp(gen, nil), "/api/reports?startDate=2024-01-01&endDate=2024-01-31")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "2024-01-01", gen.got.StartDate)
	assert.Equal(t, "2024-01-31", gen.got.EndDate)
}

func TestReportHandler_Get_ParametrosInvalidos(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		message string
	}{
		{"tipo desconocido", "/api/reports?type=hourly", "type debe ser uno de"},
		{"startDate mal formado", "/api/reports?startDate=01-01-2024", "startDate debe tener formato YYYY-MM-DD"},
		{"date demasiado largo", "/api/reports?date=2024-05-15T10:00", "date admite máximo 10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &generatorStub{rep: sampleResponse()}
			resp, body := get(t, newReportApp(gen, nil), tt.url)

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			var er dto.ErrorResponse
			require.NoError(t, json.Unmarshal(body, &er))
			assert.Equal(t, "INVALID_PARAMS", er.Code)
			assert.Contains(t, er.Message, tt.message)
			assert.Equal(t, dto.ReportRequest{}, gen.got, "no debe llamar al caso de uso")
		})
	}
}

func TestReportHandler_Get_EntradaInvalidaDelCasoDeUso(t *testing.T) {
	gen := &generatorStub{err: fmt.Errorf("%w: startDate no puede ser posterior a endDate", domain.ErrInvalidInput)}
	resp, body := get(t, newReportApp(gen, nil), "/api/reports?startDate=2024-02-01&endDate=2024-01-01")

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var er dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &er))
	assert.Equal(t, "BAD_REQUEST", er.Code)
}

func TestReportHandler_Get_ErrorDeAlmacenamiento(t *testing.T) {
	gen := &generatorStub{err: errors.New("report: facturas: dial tcp 10.0.0.5:5432: connection refused")}
	resp, body := get(t, newReportApp(gen, nil), "/api/reports")

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	var er dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &er))
	assert.Equal(t, "INTERNAL", er.Code)
	assert.Equal(t, "no se pudo generar el reporte", er.Message)
	assert.NotContains(t, string(body), "10.0.0.5", "no se filtran detalles de infraestructura")
}

// ──────────────────────────────────────────────────────────────────────────────
// GET /api/reports/pdf
// ──────────────────────────────────────────────────────────────────────────────

func TestReportHandler_ExportPDF(t *testing.T) {
	resp, body := get(t, newReportApp(&generatorStub{}, &exporterStub{}), "/api/reports/pdf?type=daily")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "reporte_daily_2024-05-15_2024-05-15.pdf")
	assert.Equal(t, "%PDF-1.4 demo", string(body))
}

func TestReportHandler_ExportPDF_Error(t *testing.T) {
	resp, _ := get(t, newReportApp(&generatorStub{}, &exporterStub{err: errors.New("maroto")}), "/api/reports/pdf")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestReportHandler_ExportPDF_NoDisponible(t *testing.T) {
	h := apphttp.NewReportHandler(&generatorStub{}, nil, zerolog.Nop())
	app := fiber.New()
	app.Get("/api/reports/pdf", h.ExportPDF)

	resp, _ := get(t, app, "/api/reports/pdf")
	assert.Equal(t, http.StatusNotImplemented, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Router: JWT + roles + caso de uso real con repositorios en memoria
// ──────────────────────────────────────────────────────────────────────────────

type emptyInvoices struct{}

func (emptyInvoices) ListAll(context.Context) ([]*entity.Invoice, error) { return nil, nil }

type emptyProducts struct{}

func (emptyProducts) ListAll(context.Context) ([]*entity.Product, error) { return nil, nil }

type emptyDamaged struct{}

func (emptyDamaged) ListAll(context.Context) ([]*entity.DamagedItem, error) { return nil, nil }

func newRouterApp() *fiber.App {
	uc := report.NewReportUseCase(emptyInvoices{}, emptyProducts{}, emptyDamaged{}, nil, report.Config{
		Location: time.UTC,
		Now:      func() time.Time { return time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC) },
	}, zerolog.Nop())
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{ReportUC: uc, JWTSecret: testJWTSecret, Logger: zerolog.Nop()})
	return app
}

func TestRouter_Reports(t *testing.T) {
	tests := []struct {
		name   string
		auth   string
		status int
	}{
		{"sin token", "", http.StatusUnauthorized},
		{"admin", tokenForRole(t, apphttp.RoleAdmin), http.StatusOK},
		{"vendedor", tokenForRole(t, apphttp.RoleVendedor), http.StatusOK},
		{"bodeguero", tokenForRole(t, "bodeguero"), http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/reports?type=monthly&date=2024-05", nil)
			if tt.auth != "" {
				req.Header.Set("Authorization", tt.auth)
			}
			resp, err := newRouterApp().Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tt.status, resp.StatusCode)

			if tt.status == http.StatusOK {
				var rep dto.ReportResponse
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&rep))
				assert.Equal(t, "monthly", rep.Type)
				assert.Len(t, rep.ChartData, 31)
				assert.Equal(t, "2024-05-01", rep.Period.StartDate)
				assert.Equal(t, "2024-05-31", rep.Period.EndDate)
			}
		})
	}
}

func TestRouter_PDFSinExportador(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/reports/pdf", nil)
	req.Header.Set("Authorization", tokenForRole(t, apphttp.RoleAdmin))
	resp, err := newRouterApp().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotImplemented, resp.StatusCode)
}
