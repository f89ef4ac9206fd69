package report_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-reports/internal/domain/entity"
	"github.com/jhoicas/pos-reports/internal/domain/report"
)

// El mismo conjunto de ítems en los tres formatos heredados produce la misma secuencia canónica.
func TestNormalize_TresFormatosEquivalentes(t *testing.T) {
	jsonInv := &entity.Invoice{
		ID: "json",
		ProductsData: `[
			{"productId":"p1","productName":"Arroz","sellingPrice":"2500","purchasePrice":"1800","quantity":"2","discount":"0"},
			{"productId":"p2","productName":"Leche","sellingPrice":"3200.50","purchasePrice":"2100","quantity":"1","discount":"10"}
		]`,
	}
	materialized := &entity.Invoice{
		ID: "materialized",
		Products: []entity.RawLineItem{
			{ProductID: "p1", ProductName: "Arroz", SellingPrice: nd("2500"), PurchasePrice: nd("1800"), Quantity: dec("2"), Discount: dec("0")},
			{ProductID: "p2", ProductName: "Leche", SellingPrice: nd("3200.50"), PurchasePrice: nd("2100"), Quantity: dec("1"), Discount: dec("10")},
		},
	}
	columns := &entity.Invoice{
		ID: "columns",
		Legacy: entity.LegacyProductColumns{
			ProductIDs:     "p1,p2",
			ProductNames:   "Arroz,Leche",
			Quantities:     "2,1",
			Prices:         "2500,3200.50",
			Discounts:      "0,10",
			PurchasePrices: "1800,2100",
		},
	}

	a := report.Normalize(jsonInv)
	b := report.Normalize(materialized)
	c := report.Normalize(columns)

	assert.Equal(t, report.EncodingJSONPayload, a.Encoding)
	assert.Equal(t, report.EncodingMaterialized, b.Encoding)
	assert.Equal(t, report.EncodingColumns, c.Encoding)

	for _, res := range []report.NormalizeResult{a, b, c} {
		require.Empty(t, res.Problem)
		require.Len(t, res.Items, 2)
	}
	for i := range a.Items {
		for _, other := range []report.NormalizeResult{b, c} {
			x, y := a.Items[i], other.Items[i]
			assert.Equal(t, x.ProductID, y.ProductID)
			assert.Equal(t, x.ProductName, y.ProductName)
			assertDec(t, x.SellingPrice.String(), y.SellingPrice)
			assertDec(t, x.Quantity.String(), y.Quantity)
			assertDec(t, x.DiscountPct.String(), y.DiscountPct)
			assert.Equal(t, x.PurchasePrice.Valid, y.PurchasePrice.Valid)
			assertDec(t, x.PurchasePrice.Decimal.String(), y.PurchasePrice.Decimal)
			assert.Equal(t, x.Total.Valid, y.Total.Valid)
			assert.Equal(t, x.Profit.Valid, y.Profit.Valid)
		}
	}
}

func TestNormalize_PrioridadJSONSobreOtros(t *testing.T) {
	inv := &entity.Invoice{
		ProductsData: `[{"productId":"a","quantity":1,"sellingPrice":1}]`,
		Products:     []entity.RawLineItem{{ProductID: "b"}},
		Legacy:       entity.LegacyProductColumns{ProductIDs: "c", ProductNames: "C", Quantities: "1", Prices: "1"},
	}
	res := report.Normalize(inv)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "a", res.Items[0].ProductID)
}

func TestNormalize_JSONIlegibleNoCaeAOtroFormato(t *testing.T) {
	inv := &entity.Invoice{
		ProductsData: `no es json`,
		Products:     []entity.RawLineItem{{ProductID: "b"}},
	}
	res := report.Normalize(inv)
	assert.Equal(t, report.EncodingJSONPayload, res.Encoding)
	assert.NotEmpty(t, res.Problem)
	assert.Empty(t, res.Items)
}

func TestNormalize_AliasYIdNumerico(t *testing.T) {
	inv := &entity.Invoice{ProductsData: `[{"id":17,"name":"Pan","price":"1200","quantity":3,"total":3000,"profit":null}]`}
	res := report.Normalize(inv)
	require.Empty(t, res.Problem)
	require.Len(t, res.Items, 1)

	it := res.Items[0]
	assert.Equal(t, "17", it.ProductID)
	assert.Equal(t, "Pan", it.ProductName)
	assertDec(t, "1200", it.SellingPrice)
	assert.True(t, it.Total.Valid)
	assertDec(t, "3000", it.Total.Decimal)
	assert.False(t, it.Profit.Valid)
	assert.False(t, it.PurchasePrice.Valid, "sin purchasePrice el costo queda ausente")
}

func TestNormalize_ColumnasDeLongitudDistinta(t *testing.T) {
	inv := &entity.Invoice{Legacy: entity.LegacyProductColumns{
		ProductIDs: "p1,p2", ProductNames: "A,B", Quantities: "1", Prices: "10,20",
	}}
	res := report.Normalize(inv)
	assert.Equal(t, report.EncodingColumns, res.Encoding)
	assert.NotEmpty(t, res.Problem)
	assert.Empty(t, res.Items)
}

func TestNormalize_ColumnaOpcionalDeLongitudDistinta(t *testing.T) {
	inv := &entity.Invoice{Legacy: entity.LegacyProductColumns{
		ProductIDs: "p1,p2", ProductNames: "A,B", Quantities: "1,1", Prices: "10,20", Discounts: "5",
	}}
	res := report.Normalize(inv)
	assert.NotEmpty(t, res.Problem)
	assert.Empty(t, res.Items)
}

func TestNormalize_ColumnasOpcionalesAusentesValenCero(t *testing.T) {
	inv := &entity.Invoice{Legacy: entity.LegacyProductColumns{
		ProductIDs: "p1, p2", ProductNames: "A, B", Quantities: "2, x", Prices: "10, 20",
	}}
	res := report.Normalize(inv)
	require.Empty(t, res.Problem)
	require.Len(t, res.Items, 2)
	for _, it := range res.Items {
		assertDec(t, "0", it.DiscountPct)
		assert.True(t, it.PurchasePrice.Valid)
		assertDec(t, "0", it.PurchasePrice.Decimal)
	}
	assert.Equal(t, "p2", res.Items[1].ProductID)
	assertDec(t, "0", res.Items[1].Quantity, "celda ilegible vale 0")
}

func TestNormalize_SinFormato(t *testing.T) {
	res := report.Normalize(&entity.Invoice{ID: "vacia", Products: []entity.RawLineItem{}})
	assert.Equal(t, report.EncodingNone, res.Encoding)
	assert.NotEmpty(t, res.Problem)
	assert.NotNil(t, res.Items)
	assert.Empty(t, res.Items)
}

func TestNormalize_LimitaCantidadYDescuento(t *testing.T) {
	inv := &entity.Invoice{ProductsData: `[{"productId":"p","sellingPrice":10,"quantity":-2,"discount":150}]`}
	res := report.Normalize(inv)
	require.Len(t, res.Items, 1)
	assertDec(t, "0", res.Items[0].Quantity)
	assertDec(t, "100", res.Items[0].DiscountPct)
}
