// Package report contiene el motor de reportes de ventas: normalización de ítems
// heredados, resolución de precio final, utilidad con descuentos y agregación por
// periodos. Todo es puro y de solo lectura; no conoce la base de datos ni HTTP.
package report

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-reports/internal/domain/entity"
)

var (
	hundred     = decimal.NewFromInt(100)
	one         = decimal.NewFromInt(1)
	maxDiscRate = decimal.NewFromFloat(0.99)
)

// LineItem ítem canónico de una factura, independiente del formato en que se guardó.
// Se recalcula en cada reporte; nunca se persiste.
type LineItem struct {
	ProductID     string
	ProductName   string
	SellingPrice  decimal.Decimal
	PurchasePrice decimal.NullDecimal // ausente = costo desconocido (estado válido)
	Quantity      decimal.Decimal     // >= 0
	DiscountPct   decimal.Decimal     // 0..100
	Total         decimal.NullDecimal // total de línea ya con descuentos
	Profit        decimal.NullDecimal // utilidad precalculada al facturar
}

// fromRaw convierte la forma JSON heredada al ítem canónico.
func fromRaw(raw entity.RawLineItem) LineItem {
	id := string(raw.ProductID)
	if id == "" {
		id = string(raw.ID)
	}
	name := raw.ProductName
	if name == "" {
		name = raw.Name
	}
	price := raw.SellingPrice
	if !price.Valid {
		price = raw.Price
	}
	return newLineItem(id, name, price.Decimal, raw.PurchasePrice, raw.Quantity, raw.Discount, raw.Total, raw.Profit)
}

func newLineItem(
	id, name string,
	sellingPrice decimal.Decimal,
	purchasePrice decimal.NullDecimal,
	quantity, discountPct decimal.Decimal,
	total, profit decimal.NullDecimal,
) LineItem {
	return LineItem{
		ProductID:     id,
		ProductName:   name,
		SellingPrice:  sellingPrice,
		PurchasePrice: purchasePrice,
		Quantity:      decimal.Max(quantity, decimal.Zero),
		DiscountPct:   clamp(discountPct, decimal.Zero, hundred),
		Total:         total,
		Profit:        profit,
	}
}

func clamp(v, lo, hi decimal.Decimal) decimal.Decimal {
	if v.LessThan(lo) {
		return lo
	}
	if v.GreaterThan(hi) {
		return hi
	}
	return v
}
