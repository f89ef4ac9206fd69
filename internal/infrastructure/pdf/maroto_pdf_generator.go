// Package pdf implementa la exportación del reporte de ventas y utilidad a PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del reporte  │  Periodo + fecha de emisión  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Ventas | Utilidad | Daños | Gastos | N° ventas    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  GRÁFICO (tabla): Bucket | Ingresos | Utilidad              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOP PRODUCTOS: Producto | Cant. | Ingresos | Utilidad      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DETALLE: Fecha | Tipo | Descripción | Monto                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/jhoicas/pos-reports/internal/application/dto"
	appreport "github.com/jhoicas/pos-reports/internal/application/report"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var (
	locale  = language.MustParse("es-CO")
	printer = message.NewPrinter(locale)
	upper   = cases.Upper(locale)
)

var typeTitles = map[string]string{
	"daily":   "reporte diario",
	"weekly":  "reporte semanal",
	"monthly": "reporte mensual",
	"yearly":  "reporte anual",
}

var detailLabels = map[string]string{
	dto.DetailTypeSale:    "Venta",
	dto.DetailTypeDamage:  "Daño",
	dto.DetailTypeExpense: "Gasto",
}

// ── Generator ─────────────────────────────────────────────────────────────────

var _ appreport.ReportPDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa report.ReportPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	appName string
	now     func() time.Time
}

// NewMarotoPDFGenerator construye el generador. appName aparece como autor del documento.
func NewMarotoPDFGenerator(appName string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{appName: appName, now: time.Now}
}

// GenerateReportPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateReportPDF(ctx context.Context, rep *dto.ReportResponse) ([]byte, error) {
	if rep == nil {
		return nil, fmt.Errorf("pdf: reporte vacío")
	}
	title := upper.String(nonEmpty(typeTitles[rep.Type], "reporte"))

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(nonEmpty(g.appName, "pos-reports"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(title, rep.Period, g.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRows(rep.Summary)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(sectionTitle("DISTRIBUCIÓN DEL PERIODO"))
	m.AddRows(tableHeader([]string{"Periodo", "Ingresos", "Utilidad"}, []int{4, 4, 4}))
	m.AddRows(chartRows(rep.ChartData)...)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(sectionTitle("PRODUCTOS MÁS VENDIDOS"))
	if len(rep.TopProducts) == 0 {
		m.AddRows(emptyRow("Sin ventas en el periodo"))
	} else {
		m.AddRows(tableHeader([]string{"Producto", "Cant.", "Ingresos", "Utilidad"}, []int{6, 2, 2, 2}))
		m.AddRows(topProductRows(rep.TopProducts)...)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(sectionTitle("DETALLE"))
	if len(rep.DetailedReports) == 0 {
		m.AddRows(emptyRow("Sin movimientos en el periodo"))
	} else {
		m.AddRows(tableHeader([]string{"Fecha", "Tipo", "Descripción", "Monto"}, []int{2, 2, 6, 2}))
		m.AddRows(detailRows(rep.DetailedReports)...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y periodo + fecha de emisión (der).
func headerRow(title string, period dto.PeriodDTO, issued time.Time) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New(fmt.Sprintf("Periodo: %s a %s", period.StartDate, period.EndDate), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2,
			}),
			text.New("Emitido: "+issued.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// summaryRows: etiquetas y valores del resumen en cinco columnas.
func summaryRows(s dto.ReportSummaryDTO) []core.Row {
	label := func(l string) core.Col {
		return col.New(2).Add(text.New(l, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Center, Color: colorPrimary, Top: 1,
		}))
	}
	value := func(v string) core.Col {
		return col.New(2).Add(text.New(v, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Center, Top: 1,
		}))
	}
	return []core.Row{
		row.New(6).Add(
			label("Ventas"), label("Utilidad"), label("Daños"), label("Gastos"), label("N° ventas"),
		),
		row.New(8).Add(
			value(formatMoney(s.TotalSales)),
			value(formatMoney(s.TotalProfit)),
			value(formatMoney(s.TotalDamages)),
			value(formatMoney(s.TotalExpenses)),
			value(printer.Sprint(number.Decimal(s.SalesCount))),
		),
	}
}

func sectionTitle(s string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2}),
	))
}

func emptyRow(s string) core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New(s, props.Text{Size: 8, Color: colorGray, Top: 1, Left: 1}),
	))
}

// tableHeader: cabecera de tabla; sizes debe sumar 12.
func tableHeader(labels []string, sizes []int) core.Row {
	cols := make([]core.Col, 0, len(labels))
	for i, l := range labels {
		a := align.Right
		if i == 0 {
			a = align.Left
		}
		cols = append(cols, col.New(sizes[i]).Add(text.New(l, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		})))
	}
	return row.New(6).Add(cols...)
}

func cell(size int, s string, a align.Type) core.Col {
	return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
}

func chartRows(points []dto.ChartPointDTO) []core.Row {
	rows := make([]core.Row, 0, len(points))
	for _, p := range points {
		rows = append(rows, row.New(5).Add(
			cell(4, p.Name, align.Left),
			cell(4, formatMoney(p.Revenue), align.Right),
			cell(4, formatMoney(p.Profit), align.Right),
		))
	}
	return rows
}

func topProductRows(products []dto.TopProductDTO) []core.Row {
	rows := make([]core.Row, 0, len(products))
	for _, p := range products {
		rows = append(rows, row.New(6).Add(
			cell(6, p.Name, align.Left),
			cell(2, formatQuantity(p.SoldQuantity), align.Right),
			cell(2, formatMoney(p.Revenue), align.Right),
			cell(2, formatMoney(p.Profit), align.Right),
		))
	}
	return rows
}

func detailRows(details []dto.DetailedReportDTO) []core.Row {
	rows := make([]core.Row, 0, len(details))
	for _, d := range details {
		rows = append(rows, row.New(6).Add(
			cell(2, d.Date.Format("02/01/2006 15:04"), align.Left),
			cell(2, nonEmpty(detailLabels[d.Type], d.Type), align.Right),
			cell(6, d.Details, align.Left),
			cell(2, formatMoney(d.Amount), align.Right),
		))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney pesos sin decimales con separador de miles local. Ej: 25000 → "$25.000".
func formatMoney(d decimal.Decimal) string {
	return "$" + printer.Sprint(number.Decimal(d.Round(0).IntPart(), number.Scale(0)))
}

// formatQuantity cantidades con hasta dos decimales.
func formatQuantity(d decimal.Decimal) string {
	f, _ := d.Float64()
	return printer.Sprint(number.Decimal(f, number.MaxFractionDigits(2)))
}
