package report

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-reports/internal/domain/entity"
)

// ProfitSource cómo se obtuvo la utilidad de un ítem.
type ProfitSource string

const (
	ProfitPrecomputed ProfitSource = "precomputed"  // tomada tal cual de la factura
	ProfitDerived     ProfitSource = "derived"      // calculada con margen y descuento
	ProfitMissingCost ProfitSource = "missing_cost" // sin precio de compra: utilidad 0
)

// LineProfit resultado inmutable del cálculo de un ítem. No se vuelve a escribir sobre
// el ítem ni sobre el producto del catálogo.
type LineProfit struct {
	ProductID      string
	ProductName    string
	Quantity       decimal.Decimal
	Revenue        decimal.Decimal // total de línea después de descuentos
	Profit         decimal.Decimal
	FinalUnitPrice decimal.Decimal
	TotalDiscount  decimal.Decimal
	Source         ProfitSource
}

// CalculateProfit utilidad atribuible al ítem.
//
// El descuento se reparte entre costo y utilidad en proporción al margen:
//
//	originalProfit   = (venta - compra) × cantidad
//	profitMargin     = clamp((venta - compra) / venta, 0, 1)
//	discountOnProfit = totalDiscount × profitMargin
//	profit           = max(0, originalProfit - discountOnProfit)
func CalculateProfit(item LineItem, price PriceResolution) LineProfit {
	lp := LineProfit{
		ProductID:      item.ProductID,
		ProductName:    item.ProductName,
		Quantity:       item.Quantity,
		Revenue:        lineRevenue(item, price),
		FinalUnitPrice: price.FinalUnitPrice,
		TotalDiscount:  price.TotalDiscount,
	}

	switch {
	case item.Profit.Valid:
		lp.Source = ProfitPrecomputed
		lp.Profit = item.Profit.Decimal
	case item.PurchasePrice.Valid:
		lp.Source = ProfitDerived
		unitMargin := item.SellingPrice.Sub(item.PurchasePrice.Decimal)
		originalProfit := unitMargin.Mul(item.Quantity)
		margin := decimal.Zero
		if item.SellingPrice.IsPositive() {
			margin = clamp(unitMargin.Div(item.SellingPrice), decimal.Zero, one)
		}
		discountOnProfit := price.TotalDiscount.Mul(margin)
		lp.Profit = decimal.Max(originalProfit.Sub(discountOnProfit), decimal.Zero)
	default:
		lp.Source = ProfitMissingCost
		lp.Profit = decimal.Zero
	}
	return lp
}

// lineRevenue prefiere el total persistido; si no existe usa precio final × cantidad.
func lineRevenue(item LineItem, price PriceResolution) decimal.Decimal {
	if item.Total.Valid {
		return item.Total.Decimal
	}
	return price.FinalUnitPrice.Mul(item.Quantity)
}

// ── Factura completa ──────────────────────────────────────────────────────────

// InvoiceEvaluation resultado de procesar una factura completa.
type InvoiceEvaluation struct {
	InvoiceID   string
	Encoding    Encoding
	Problem     string // formato ilegible o ausente; la factura aporta 0 a la utilidad
	Revenue     decimal.Decimal
	Profit      decimal.Decimal
	Lines       []LineProfit
	MissingCost []string // productos sin precio de compra
}

// EvaluateInvoice normaliza los ítems, resuelve precios, calcula la utilidad de cada
// línea y aplica la corrección por descuento global no distribuido.
//
// Revenue siempre es el Total de la factura, aunque sus ítems sean ilegibles.
func EvaluateInvoice(inv *entity.Invoice) InvoiceEvaluation {
	norm := Normalize(inv)
	dc := DiscountContextOf(inv)

	ev := InvoiceEvaluation{
		InvoiceID: inv.ID,
		Encoding:  norm.Encoding,
		Problem:   norm.Problem,
		Revenue:   inv.Total,
		Lines:     make([]LineProfit, 0, len(norm.Items)),
	}

	// La corrección queda en cada línea para que ranking y resumen sumen lo mismo.
	keep := one.Sub(undistributedDiscountRate(dc))
	profit := decimal.Zero
	for _, item := range norm.Items {
		lp := CalculateProfit(item, ResolvePrice(item, PriceSourceFor(item, dc)))
		switch lp.Source {
		case ProfitPrecomputed:
			lp.Profit = lp.Profit.Mul(keep)
		case ProfitMissingCost:
			ev.MissingCost = append(ev.MissingCost, lp.ProductID)
		}
		profit = profit.Add(lp.Profit)
		ev.Lines = append(ev.Lines, lp)
	}

	ev.Profit = profit
	return ev
}

// undistributedDiscountRate tasa de corrección cuando la factura tiene descuento global
// pero ningún descuento quedó repartido en los ítems (ItemsDiscount = 0).
// Solo se aplica a utilidades tomadas tal cual: las derivadas ya incluyen la tasa global.
func undistributedDiscountRate(dc DiscountContext) decimal.Decimal {
	if dc.InvoiceDiscount.IsZero() || !dc.ItemsDiscount.IsZero() || !dc.Subtotal.IsPositive() {
		return decimal.Zero
	}
	return clampRate(dc.InvoiceDiscount.Div(dc.Subtotal))
}
