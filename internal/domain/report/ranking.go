package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-reports/internal/domain/entity"
)

// MaxTopProducts tope del ranking de productos.
const MaxTopProducts = 5

// ProductSales acumulado de ventas de un producto en el periodo.
type ProductSales struct {
	ProductID    string
	Name         string
	SoldQuantity decimal.Decimal
	Revenue      decimal.Decimal
	Profit       decimal.Decimal
}

// Ranker acumula ventas por producto a partir del catálogo completo.
// Los acumulados son propios del ranker; el catálogo no se modifica.
type Ranker struct {
	entries map[string]*ProductSales
}

// NewRanker siembra una entrada en cero por cada producto del catálogo.
func NewRanker(catalog []*entity.Product) *Ranker {
	entries := make(map[string]*ProductSales, len(catalog))
	for _, p := range catalog {
		if p == nil || p.ID == "" {
			continue
		}
		entries[p.ID] = &ProductSales{
			ProductID:    p.ID,
			Name:         p.Name,
			SoldQuantity: decimal.Zero,
			Revenue:      decimal.Zero,
			Profit:       decimal.Zero,
		}
	}
	return &Ranker{entries: entries}
}

// Add suma una línea vendida. Devuelve false si el producto no está en el catálogo.
func (r *Ranker) Add(line LineProfit) bool {
	e, ok := r.entries[line.ProductID]
	if !ok {
		return false
	}
	e.SoldQuantity = e.SoldQuantity.Add(line.Quantity)
	e.Revenue = e.Revenue.Add(line.Revenue)
	e.Profit = e.Profit.Add(line.Profit)
	return true
}

// Top devuelve los n productos con más ingresos, descartando los que no vendieron.
// n se limita a MaxTopProducts.
func (r *Ranker) Top(n int) []ProductSales {
	if n <= 0 || n > MaxTopProducts {
		n = MaxTopProducts
	}
	sold := make([]ProductSales, 0, len(r.entries))
	for _, e := range r.entries {
		if e.SoldQuantity.IsZero() {
			continue
		}
		sold = append(sold, *e)
	}
	sort.Slice(sold, func(i, j int) bool {
		if c := sold[i].Revenue.Cmp(sold[j].Revenue); c != 0 {
			return c > 0
		}
		return sold[i].ProductID < sold[j].ProductID
	})
	if len(sold) > n {
		sold = sold[:n]
	}
	return sold
}
