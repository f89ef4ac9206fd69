package report

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-reports/internal/domain/entity"
)

// DiscountContext campos de descuento de la factura que afectan el precio de cada ítem.
type DiscountContext struct {
	Subtotal           decimal.Decimal
	ItemsDiscount      decimal.Decimal
	InvoiceDiscount    decimal.Decimal
	DiscountPercentage decimal.Decimal
	Discount           decimal.Decimal // campo genérico heredado
	Total              decimal.Decimal
}

// DiscountContextOf extrae el contexto de descuento de una factura.
func DiscountContextOf(inv *entity.Invoice) DiscountContext {
	return DiscountContext{
		Subtotal:           inv.Subtotal,
		ItemsDiscount:      inv.ItemsDiscount,
		InvoiceDiscount:    inv.InvoiceDiscount,
		DiscountPercentage: inv.DiscountPercentage,
		Discount:           inv.Discount,
		Total:              inv.Total,
	}
}

// InvoiceDiscountRate tasa de descuento global de la factura, en [0, 0.99].
//
// Prioridad:
//  1. DiscountPercentage / 100 si es > 0.
//  2. InvoiceDiscount / Subtotal si Subtotal > 0.
//  3. Discount / (Total + Discount): estimación a partir del campo heredado.
//  4. 0.
func InvoiceDiscountRate(dc DiscountContext) decimal.Decimal {
	var rate decimal.Decimal
	switch {
	case dc.DiscountPercentage.IsPositive():
		rate = dc.DiscountPercentage.Div(hundred)
	case dc.Subtotal.IsPositive():
		rate = dc.InvoiceDiscount.Div(dc.Subtotal)
	case dc.Discount.IsPositive() && dc.Total.Add(dc.Discount).IsPositive():
		rate = dc.Discount.Div(dc.Total.Add(dc.Discount))
	default:
		return decimal.Zero
	}
	return clampRate(rate)
}

// clampRate nunca permite un descuento del 100%: el precio final no puede quedar en 0 o negativo.
func clampRate(rate decimal.Decimal) decimal.Decimal {
	return clamp(rate, decimal.Zero, maxDiscRate)
}

// ── PriceSource ───────────────────────────────────────────────────────────────

// PriceSource origen del precio unitario final de un ítem. Es una unión cerrada:
// PrecomputedPrice o DerivedPrice.
type PriceSource interface {
	priceSource()
}

// PrecomputedPrice el ítem trae su total de línea ya descontado; es la fuente más confiable
// porque refleja la lógica que produjo la factura persistida.
type PrecomputedPrice struct {
	LineTotal decimal.Decimal
}

// DerivedPrice el precio se reconstruye desde el precio de venta y los descuentos.
type DerivedPrice struct {
	SellingPrice        decimal.Decimal
	ItemDiscountPct     decimal.Decimal
	InvoiceDiscountRate decimal.Decimal
}

func (PrecomputedPrice) priceSource() {}
func (DerivedPrice) priceSource()     {}

// PriceSourceKind etiqueta serializable del origen del precio.
type PriceSourceKind string

const (
	PriceFromTotal   PriceSourceKind = "precomputed"
	PriceFromDerived PriceSourceKind = "derived"
)

// PriceResolution resultado de resolver el precio de un ítem.
type PriceResolution struct {
	Source         PriceSourceKind
	FinalUnitPrice decimal.Decimal // >= 0
	TotalDiscount  decimal.Decimal // (SellingPrice - FinalUnitPrice) × Quantity, >= 0
}

// PriceSourceFor elige la fuente de precio del ítem: total precalculado si existe y la
// cantidad es positiva; si no, precio derivado con la tasa global de la factura.
func PriceSourceFor(item LineItem, dc DiscountContext) PriceSource {
	if item.Total.Valid && item.Quantity.IsPositive() {
		return PrecomputedPrice{LineTotal: item.Total.Decimal}
	}
	return DerivedPrice{
		SellingPrice:        item.SellingPrice,
		ItemDiscountPct:     item.DiscountPct,
		InvoiceDiscountRate: InvoiceDiscountRate(dc),
	}
}

// ResolvePrice calcula el precio unitario final del ítem a partir de su fuente.
func ResolvePrice(item LineItem, src PriceSource) PriceResolution {
	var res PriceResolution
	switch s := src.(type) {
	case PrecomputedPrice:
		res.Source = PriceFromTotal
		if item.Quantity.IsPositive() {
			res.FinalUnitPrice = s.LineTotal.Div(item.Quantity)
		}
	case DerivedPrice:
		res.Source = PriceFromDerived
		afterItem := s.SellingPrice.Mul(one.Sub(s.ItemDiscountPct.Div(hundred)))
		res.FinalUnitPrice = afterItem.Mul(one.Sub(clampRate(s.InvoiceDiscountRate)))
	}
	res.FinalUnitPrice = decimal.Max(res.FinalUnitPrice, decimal.Zero)
	// Un total mayor al precio de lista no es descuento.
	res.TotalDiscount = decimal.Max(
		item.SellingPrice.Sub(res.FinalUnitPrice).Mul(item.Quantity),
		decimal.Zero,
	)
	return res
}
