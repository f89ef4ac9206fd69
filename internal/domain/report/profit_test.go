package report_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-reports/internal/domain/entity"
	"github.com/jhoicas/pos-reports/internal/domain/report"
)

func profitFor(item report.LineItem, dc report.DiscountContext) report.LineProfit {
	return report.CalculateProfit(item, report.ResolvePrice(item, report.PriceSourceFor(item, dc)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenarios de referencia
// ──────────────────────────────────────────────────────────────────────────────

// Escenario A: margen 0.4, descuento 20 → 8 del descuento cae sobre la utilidad.
func TestCalculateProfit_EscenarioA(t *testing.T) {
	item := report.LineItem{ProductID: "p1", SellingPrice: dec("100"), PurchasePrice: nd("60"), Quantity: dec("1")}
	dc := report.DiscountContext{Subtotal: dec("100"), InvoiceDiscount: dec("20"), Total: dec("80")}

	lp := profitFor(item, dc)
	assert.Equal(t, report.ProfitDerived, lp.Source)
	assertDec(t, "80", lp.FinalUnitPrice)
	assertDec(t, "20", lp.TotalDiscount)
	assertDec(t, "80", lp.Revenue)
	assertDec(t, "32", lp.Profit)
}

// Escenario B: sin precio de compra la utilidad es 0, sin error.
func TestCalculateProfit_EscenarioB_SinCosto(t *testing.T) {
	item := report.LineItem{ProductID: "p1", SellingPrice: dec("100"), Quantity: dec("1")}
	dc := report.DiscountContext{Subtotal: dec("100"), InvoiceDiscount: dec("20"), Total: dec("80")}

	var lp report.LineProfit
	require.NotPanics(t, func() { lp = profitFor(item, dc) })
	assert.Equal(t, report.ProfitMissingCost, lp.Source)
	assertDec(t, "0", lp.Profit)
	assertDec(t, "80", lp.Revenue, "el ingreso sigue contando")
}

// Escenario C: 50% de descuento por ítem, margen 0.1.
func TestCalculateProfit_EscenarioC(t *testing.T) {
	item := report.LineItem{
		ProductID: "p1", SellingPrice: dec("100"), PurchasePrice: nd("90"),
		Quantity: dec("2"), DiscountPct: dec("50"),
	}
	lp := profitFor(item, report.DiscountContext{Subtotal: dec("200"), Total: dec("100")})

	assertDec(t, "50", lp.FinalUnitPrice)
	assertDec(t, "100", lp.TotalDiscount)
	assertDec(t, "10", lp.Profit)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reglas de la utilidad
// ──────────────────────────────────────────────────────────────────────────────

func TestCalculateProfit_UtilidadPrecalculadaSeRespeta(t *testing.T) {
	item := report.LineItem{
		SellingPrice: dec("100"), PurchasePrice: nd("60"), Quantity: dec("1"),
		Profit: nd("12.5"),
	}
	lp := profitFor(item, report.DiscountContext{Subtotal: dec("100"), InvoiceDiscount: dec("50")})
	assert.Equal(t, report.ProfitPrecomputed, lp.Source)
	assertDec(t, "12.5", lp.Profit)
}

func TestCalculateProfit_DescuentoMayorAlMargenQuedaEnCero(t *testing.T) {
	// Compra > venta: margen 0, la utilidad original es negativa y se lleva a 0.
	item := report.LineItem{SellingPrice: dec("50"), PurchasePrice: nd("70"), Quantity: dec("4")}
	lp := profitFor(item, report.DiscountContext{})
	assertDec(t, "0", lp.Profit)
}

func TestCalculateProfit_PrecioVentaCeroNoDivide(t *testing.T) {
	item := report.LineItem{SellingPrice: decimal.Zero, PurchasePrice: nd("10"), Quantity: dec("1")}
	var lp report.LineProfit
	require.NotPanics(t, func() { lp = profitFor(item, report.DiscountContext{}) })
	assertDec(t, "0", lp.Profit)
}

// Con precio de compra conocido la utilidad nunca es negativa.
func TestCalculateProfit_NuncaNegativaConCosto(t *testing.T) {
	prices := []string{"0", "1", "49.99", "100", "1000"}
	discounts := []string{"0", "10", "50", "100"}
	qtys := []string{"0", "1", "3.5"}
	dcs := []report.DiscountContext{
		{},
		{Subtotal: dec("100"), InvoiceDiscount: dec("20")},
		{DiscountPercentage: dec("100")},
		{Discount: dec("30"), Total: dec("10")},
	}
	for _, sp := range prices {
		for _, pp := range prices {
			for _, d := range discounts {
				for _, q := range qtys {
					for _, dc := range dcs {
						item := report.LineItem{
							SellingPrice: dec(sp), PurchasePrice: nd(pp),
							Quantity: dec(q), DiscountPct: dec(d),
						}
						lp := profitFor(item, dc)
						require.False(t, lp.Profit.IsNegative(),
							"utilidad negativa sp=%s pp=%s d=%s q=%s: %s", sp, pp, d, q, lp.Profit)
					}
				}
			}
		}
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Evaluación de factura completa
// ──────────────────────────────────────────────────────────────────────────────

func TestEvaluateInvoice_EscenarioA_SinDobleDescuento(t *testing.T) {
	inv := &entity.Invoice{
		ID: "inv-a", Subtotal: dec("100"), InvoiceDiscount: dec("20"), Total: dec("80"),
		ProductsData: `[{"productId":"p1","productName":"Café","sellingPrice":100,"purchasePrice":60,"quantity":1,"discount":0}]`,
	}
	ev := report.EvaluateInvoice(inv)
	assert.Empty(t, ev.Problem)
	assert.Equal(t, report.EncodingJSONPayload, ev.Encoding)
	require.Len(t, ev.Lines, 1)
	assertDec(t, "80", ev.Revenue)
	assertDec(t, "32", ev.Profit)
}

// Descuento global no distribuido: la utilidad guardada tal cual se escala por la tasa.
func TestEvaluateInvoice_CorreccionDescuentoNoDistribuido(t *testing.T) {
	inv := &entity.Invoice{
		ID: "inv-b", Subtotal: dec("100"), InvoiceDiscount: dec("20"), Total: dec("80"),
		Products: []entity.RawLineItem{
			{ProductID: "p1", SellingPrice: nd("100"), Quantity: dec("1"), Profit: nd("40")},
		},
	}
	ev := report.EvaluateInvoice(inv)
	assert.Equal(t, report.EncodingMaterialized, ev.Encoding)
	assertDec(t, "32", ev.Profit)
	require.Len(t, ev.Lines, 1)
	assertDec(t, "32", ev.Lines[0].Profit, "la línea lleva la utilidad ya corregida")
}

// El ranking recibe las mismas utilidades que suman el resumen de la factura.
func TestEvaluateInvoice_RankingCuadraConResumen(t *testing.T) {
	inv := &entity.Invoice{
		ID: "inv-r", Subtotal: dec("200"), InvoiceDiscount: dec("50"), Total: dec("150"),
		Products: []entity.RawLineItem{
			{ProductID: "p1", SellingPrice: nd("100"), Quantity: dec("1"), Profit: nd("40")},
			{ProductID: "p2", SellingPrice: nd("100"), PurchasePrice: nd("70"), Quantity: dec("1")},
		},
	}
	ev := report.EvaluateInvoice(inv)

	ranker := report.NewRanker([]*entity.Product{{ID: "p1", Name: "Uno"}, {ID: "p2", Name: "Dos"}})
	for _, l := range ev.Lines {
		require.True(t, ranker.Add(l))
	}
	sum := decimal.Zero
	for _, p := range ranker.Top(report.MaxTopProducts) {
		sum = sum.Add(p.Profit)
	}
	assertDec(t, ev.Profit.String(), sum)
	assertDec(t, "30", ev.Lines[0].Profit, "40 × (1 - 0.25)")
}

func TestEvaluateInvoice_SinCorreccionSiHayDescuentoPorItem(t *testing.T) {
	inv := &entity.Invoice{
		ID: "inv-c", Subtotal: dec("100"), ItemsDiscount: dec("5"), InvoiceDiscount: dec("20"), Total: dec("75"),
		Products: []entity.RawLineItem{
			{ProductID: "p1", SellingPrice: nd("100"), Quantity: dec("1"), Profit: nd("40")},
		},
	}
	ev := report.EvaluateInvoice(inv)
	assertDec(t, "40", ev.Profit)
}

// Escenario D: productsData ilegible → sin ítems, el total sigue contando y la utilidad es 0.
func TestEvaluateInvoice_EscenarioD_JSONIlegible(t *testing.T) {
	inv := &entity.Invoice{ID: "inv-d", Subtotal: dec("50"), Total: dec("50"), ProductsData: `[{"productId": "p1",`}
	var ev report.InvoiceEvaluation
	require.NotPanics(t, func() { ev = report.EvaluateInvoice(inv) })
	assert.NotEmpty(t, ev.Problem)
	assert.Empty(t, ev.Lines)
	assertDec(t, "50", ev.Revenue)
	assertDec(t, "0", ev.Profit)
}

func TestEvaluateInvoice_RegistraProductosSinCosto(t *testing.T) {
	inv := &entity.Invoice{
		ID: "inv-e", Subtotal: dec("30"), Total: dec("30"),
		Products: []entity.RawLineItem{
			{ProductID: "p1", SellingPrice: nd("10"), Quantity: dec("1"), PurchasePrice: nd("4")},
			{ProductID: "p2", SellingPrice: nd("20"), Quantity: dec("1")},
		},
	}
	ev := report.EvaluateInvoice(inv)
	assert.Equal(t, []string{"p2"}, ev.MissingCost)
	assertDec(t, "6", ev.Profit)
}
