package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── Query parameters ──────────────────────────────────────────────────────────

// ReportRequest parámetros para GET /api/reports.
// startDate/endDate tienen prioridad sobre type/date. Date es YYYY-MM-DD, YYYY-MM o YYYY según type.
type ReportRequest struct {
	Type      string `query:"type" validate:"omitempty,oneof=daily weekly monthly yearly"`
	Date      string `query:"date" validate:"omitempty,max=10"`
	StartDate string `query:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `query:"endDate" validate:"omitempty,datetime=2006-01-02"`
}

// ── Respuesta ─────────────────────────────────────────────────────────────────

// Tipos de registro en detailedReports.
const (
	DetailTypeSale    = "sale"
	DetailTypeDamage  = "damage"
	DetailTypeExpense = "expense"
)

// ReportResponse respuesta completa de GET /api/reports.
type ReportResponse struct {
	Type            string              `json:"type"`
	Period          PeriodDTO           `json:"period"`
	Summary         ReportSummaryDTO    `json:"summary"`
	ChartData       []ChartPointDTO     `json:"chartData"`
	TopProducts     []TopProductDTO     `json:"topProducts"`
	DetailedReports []DetailedReportDTO `json:"detailedReports"`
}

// PeriodDTO rango de fechas del reporte.
type PeriodDTO struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// ReportSummaryDTO totales del periodo.
type ReportSummaryDTO struct {
	TotalSales    decimal.Decimal `json:"totalSales"`    // suma de Total de las facturas
	TotalProfit   decimal.Decimal `json:"totalProfit"`   // utilidad con descuentos repartidos por margen
	TotalDamages  decimal.Decimal `json:"totalDamages"`  // pérdida por mercancía dañada
	TotalExpenses decimal.Decimal `json:"totalExpenses"` // gastos del periodo
	SalesCount    int             `json:"salesCount"`
}

// ChartPointDTO un bucket del gráfico (hora, día de la semana, día del mes o mes).
type ChartPointDTO struct {
	Name    string          `json:"name"`
	Revenue decimal.Decimal `json:"revenue"`
	Profit  decimal.Decimal `json:"profit"`
}

// TopProductDTO producto del ranking por ingresos.
type TopProductDTO struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	SoldQuantity decimal.Decimal `json:"soldQuantity"`
	Revenue      decimal.Decimal `json:"revenue"`
	Profit       decimal.Decimal `json:"profit"`
}

// DetailedReportDTO fila del listado detallado; Type discrimina venta, daño o gasto.
type DetailedReportDTO struct {
	ID            string           `json:"id"`
	Date          time.Time        `json:"date"`
	Type          string           `json:"type"`
	Amount        decimal.Decimal  `json:"amount"`
	Profit        *decimal.Decimal `json:"profit,omitempty"` // solo ventas
	Details       string           `json:"details"`
	PaymentStatus string           `json:"paymentStatus,omitempty"`
	PaymentMethod string           `json:"paymentMethod,omitempty"`
	CustomerID    string           `json:"customerId,omitempty"`
	ItemsCount    int              `json:"itemsCount,omitempty"`
	ProductID     string           `json:"productId,omitempty"`
	Quantity      *decimal.Decimal `json:"quantity,omitempty"`
	Category      string           `json:"category,omitempty"`
}
