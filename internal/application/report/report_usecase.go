package report

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/pos-reports/internal/application/dto"
	"github.com/jhoicas/pos-reports/internal/domain/entity"
	domreport "github.com/jhoicas/pos-reports/internal/domain/report"
	"github.com/jhoicas/pos-reports/internal/domain/repository"
)

// Config parámetros del caso de uso de reportes.
type Config struct {
	Location    *time.Location   // zona horaria de los buckets; nil = time.Local
	TopProducts int              // tamaño del ranking; se limita a domreport.MaxTopProducts
	Now         func() time.Time // reloj inyectable; nil = time.Now
}

// UseCase arma el reporte de ventas, utilidad, daños y gastos de un periodo.
type UseCase struct {
	invoiceRepo repository.InvoiceRepository
	productRepo repository.ProductRepository
	damagedRepo repository.DamagedItemRepository
	expenseRepo repository.ExpenseRepository // opcional
	cfg         Config
	log         zerolog.Logger
}

// NewReportUseCase construye el caso de uso. expenseRepo puede ser nil.
func NewReportUseCase(
	invoiceRepo repository.InvoiceRepository,
	productRepo repository.ProductRepository,
	damagedRepo repository.DamagedItemRepository,
	expenseRepo repository.ExpenseRepository,
	cfg Config,
	log zerolog.Logger,
) *UseCase {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &UseCase{
		invoiceRepo: invoiceRepo,
		productRepo: productRepo,
		damagedRepo: damagedRepo,
		expenseRepo: expenseRepo,
		cfg:         cfg,
		log:         log,
	}
}

// snapshot colecciones leídas del almacenamiento para un reporte.
type snapshot struct {
	invoices []*entity.Invoice
	products []*entity.Product
	damaged  []*entity.DamagedItem
	expenses []*entity.Expense
}

// Generate resuelve el periodo, lee las cuatro colecciones en paralelo y arma el reporte.
//
// Retorna:
//   - domain.ErrInvalidInput si los parámetros del periodo son inválidos.
//   - el error del almacenamiento (envuelto) si alguna lectura falla; no hay reporte parcial.
func (uc *UseCase) Generate(ctx context.Context, req dto.ReportRequest) (*dto.ReportResponse, error) {
	win, err := ResolveWindow(req, uc.cfg.Now(), uc.cfg.Location)
	if err != nil {
		return nil, err
	}

	snap, err := uc.fetch(ctx)
	if err != nil {
		return nil, err
	}

	log := uc.log.With().Str("report_type", string(win.Type)).Logger()

	var (
		summary = dto.ReportSummaryDTO{
			TotalSales:    decimal.Zero,
			TotalProfit:   decimal.Zero,
			TotalDamages:  decimal.Zero,
			TotalExpenses: decimal.Zero,
		}
		series  = domreport.NewSeries(win.Type, win.Start, win.End, uc.cfg.Location)
		ranker  = domreport.NewRanker(snap.products)
		details = make([]dto.DetailedReportDTO, 0, len(snap.invoices)+len(snap.damaged)+len(snap.expenses))
	)

	// ── 1. Ventas ─────────────────────────────────────────────────────────────
	for _, inv := range snap.invoices {
		if inv == nil || inv.IsDeleted() || !win.Contains(inv.Date) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("report: %w", err)
		}

		ev := uc.evaluate(log, inv)

		summary.TotalSales = summary.TotalSales.Add(ev.Revenue)
		summary.TotalProfit = summary.TotalProfit.Add(ev.Profit)
		summary.SalesCount++

		if !series.Add(inv.Date, ev.Revenue, ev.Profit) {
			log.Warn().
				Str("invoice_id", inv.ID).
				Time("date", inv.Date).
				Msg("factura sin bucket en el gráfico")
		}
		for _, line := range ev.Lines {
			if !ranker.Add(line) {
				log.Debug().
					Str("invoice_id", inv.ID).
					Str("product_id", line.ProductID).
					Msg("producto vendido no está en el catálogo; se omite del ranking")
			}
		}

		profit := ev.Profit
		details = append(details, dto.DetailedReportDTO{
			ID:            inv.ID,
			Date:          inv.Date,
			Type:          dto.DetailTypeSale,
			Amount:        ev.Revenue,
			Profit:        &profit,
			Details:       saleDetails(inv, ev),
			PaymentStatus: inv.PaymentStatus,
			PaymentMethod: inv.PaymentMethod,
			CustomerID:    inv.CustomerID,
			ItemsCount:    len(ev.Lines),
		})
	}

	// ── 2. Mercancía dañada ───────────────────────────────────────────────────
	for _, d := range snap.damaged {
		if d == nil || !win.Contains(d.Date) {
			continue
		}
		summary.TotalDamages = summary.TotalDamages.Add(d.ValueLoss)
		qty := d.Quantity
		details = append(details, dto.DetailedReportDTO{
			ID:        d.ID,
			Date:      d.Date,
			Type:      dto.DetailTypeDamage,
			Amount:    d.ValueLoss,
			Details:   d.Description,
			ProductID: d.ProductID,
			Quantity:  &qty,
		})
	}

	// ── 3. Gastos ─────────────────────────────────────────────────────────────
	for _, e := range snap.expenses {
		if e == nil || !win.Contains(e.Date) {
			continue
		}
		summary.TotalExpenses = summary.TotalExpenses.Add(e.Amount)
		details = append(details, dto.DetailedReportDTO{
			ID:       e.ID,
			Date:     e.Date,
			Type:     dto.DetailTypeExpense,
			Amount:   e.Amount,
			Details:  e.Description,
			Category: e.Category,
		})
	}

	sort.SliceStable(details, func(i, j int) bool {
		return details[i].Date.After(details[j].Date)
	})

	return &dto.ReportResponse{
		Type: string(win.Type),
		Period: dto.PeriodDTO{
			StartDate: win.Start.Format(dayLayout),
			EndDate:   win.End.Format(dayLayout),
		},
		Summary:         summary,
		ChartData:       chartData(series),
		TopProducts:     topProducts(ranker, uc.cfg.TopProducts),
		DetailedReports: details,
	}, nil
}

// fetch lee las cuatro colecciones en paralelo. El primer error cancela las demás.
func (uc *UseCase) fetch(ctx context.Context) (*snapshot, error) {
	var snap snapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rows, err := uc.invoiceRepo.ListAll(gctx)
		if err != nil {
			return fmt.Errorf("report: facturas: %w", err)
		}
		snap.invoices = rows
		return nil
	})
	g.Go(func() error {
		rows, err := uc.productRepo.ListAll(gctx)
		if err != nil {
			return fmt.Errorf("report: productos: %w", err)
		}
		snap.products = rows
		return nil
	})
	g.Go(func() error {
		rows, err := uc.damagedRepo.ListAll(gctx)
		if err != nil {
			return fmt.Errorf("report: mercancía dañada: %w", err)
		}
		snap.damaged = rows
		return nil
	})
	if uc.expenseRepo != nil {
		g.Go(func() error {
			rows, err := uc.expenseRepo.ListAll(gctx)
			if err != nil {
				return fmt.Errorf("report: gastos: %w", err)
			}
			snap.expenses = rows
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &snap, nil
}

// evaluate procesa una factura. Un pánico al procesarla no tumba el reporte:
// la factura cuenta su total con utilidad 0.
func (uc *UseCase) evaluate(log zerolog.Logger, inv *entity.Invoice) (ev domreport.InvoiceEvaluation) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Str("invoice_id", inv.ID).
				Interface("panic", r).
				Msg("error procesando factura; se cuenta con utilidad 0")
			ev = domreport.InvoiceEvaluation{
				InvoiceID: inv.ID,
				Revenue:   inv.Total,
				Profit:    decimal.Zero,
				Problem:   fmt.Sprint(r),
			}
		}
	}()

	ev = domreport.EvaluateInvoice(inv)

	if ev.Problem != "" {
		log.Warn().
			Str("invoice_id", inv.ID).
			Str("encoding", string(ev.Encoding)).
			Str("problem", ev.Problem).
			Msg("productos de la factura ilegibles; aporta 0 a la utilidad")
	}
	for _, productID := range ev.MissingCost {
		log.Warn().
			Str("invoice_id", inv.ID).
			Str("product_id", productID).
			Msg("producto sin precio de compra; utilidad 0")
	}
	return ev
}

func saleDetails(inv *entity.Invoice, ev domreport.InvoiceEvaluation) string {
	names := make([]string, 0, len(ev.Lines))
	for _, l := range ev.Lines {
		if l.ProductName != "" {
			names = append(names, l.ProductName)
		}
	}
	s := fmt.Sprintf("Venta de %d producto(s)", len(ev.Lines))
	if inv.CustomerName != "" {
		s += " a " + inv.CustomerName
	}
	if len(names) > 0 {
		s += ": " + strings.Join(names, ", ")
	}
	return s
}

func chartData(series *domreport.Series) []dto.ChartPointDTO {
	buckets := series.Buckets()
	out := make([]dto.ChartPointDTO, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, dto.ChartPointDTO{Name: b.Name, Revenue: b.Revenue, Profit: b.Profit})
	}
	return out
}

func topProducts(ranker *domreport.Ranker, n int) []dto.TopProductDTO {
	top := ranker.Top(n)
	out := make([]dto.TopProductDTO, 0, len(top))
	for _, p := range top {
		out = append(out, dto.TopProductDTO{
			ID:           p.ProductID,
			Name:         p.Name,
			SoldQuantity: p.SoldQuantity,
			Revenue:      p.Revenue,
			Profit:       p.Profit,
		})
	}
	return out
}
