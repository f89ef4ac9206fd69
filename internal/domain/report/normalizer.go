package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-reports/internal/domain/entity"
)

// Encoding identifica el formato del que salieron los ítems de una factura.
type Encoding string

const (
	EncodingNone         Encoding = "none"
	EncodingJSONPayload  Encoding = "json_payload"
	EncodingMaterialized Encoding = "materialized"
	EncodingColumns      Encoding = "parallel_columns"
)

// NormalizeResult ítems canónicos más el diagnóstico de la normalización.
// Problem no vacío indica que el formato coincidió pero estaba mal formado.
type NormalizeResult struct {
	Items    []LineItem
	Encoding Encoding
	Problem  string
}

// lineItemEncoding un formato heredado. matches decide solo por presencia del campo;
// decode puede fallar y en ese caso la factura queda sin ítems.
type lineItemEncoding interface {
	kind() Encoding
	matches(inv *entity.Invoice) bool
	decode(inv *entity.Invoice) ([]LineItem, error)
}

// encodings en orden de prioridad; el primero que coincide gana.
var encodings = []lineItemEncoding{
	jsonPayloadEncoding{},
	materializedEncoding{},
	parallelColumnsEncoding{},
}

// Normalize extrae los ítems de la factura. Nunca falla: un formato ilegible
// produce una lista vacía y el problema queda en el resultado.
func Normalize(inv *entity.Invoice) NormalizeResult {
	for _, enc := range encodings {
		if !enc.matches(inv) {
			continue
		}
		items, err := enc.decode(inv)
		if err != nil {
			return NormalizeResult{Items: []LineItem{}, Encoding: enc.kind(), Problem: err.Error()}
		}
		return NormalizeResult{Items: items, Encoding: enc.kind()}
	}
	return NormalizeResult{
		Items:    []LineItem{},
		Encoding: EncodingNone,
		Problem:  "la factura no tiene productos en ningún formato conocido",
	}
}

// ── JSON serializado ──────────────────────────────────────────────────────────

type jsonPayloadEncoding struct{}

func (jsonPayloadEncoding) kind() Encoding { return EncodingJSONPayload }

func (jsonPayloadEncoding) matches(inv *entity.Invoice) bool {
	return strings.TrimSpace(inv.ProductsData) != ""
}

func (jsonPayloadEncoding) decode(inv *entity.Invoice) ([]LineItem, error) {
	var raws []entity.RawLineItem
	if err := json.Unmarshal([]byte(inv.ProductsData), &raws); err != nil {
		return nil, fmt.Errorf("productsData ilegible: %w", err)
	}
	items := make([]LineItem, 0, len(raws))
	for _, r := range raws {
		items = append(items, fromRaw(r))
	}
	return items, nil
}

// ── Arreglo materializado ─────────────────────────────────────────────────────

type materializedEncoding struct{}

func (materializedEncoding) kind() Encoding { return EncodingMaterialized }

func (materializedEncoding) matches(inv *entity.Invoice) bool {
	return len(inv.Products) > 0
}

func (materializedEncoding) decode(inv *entity.Invoice) ([]LineItem, error) {
	items := make([]LineItem, 0, len(inv.Products))
	for _, r := range inv.Products {
		items = append(items, fromRaw(r))
	}
	return items, nil
}

// ── Columnas paralelas ────────────────────────────────────────────────────────

type parallelColumnsEncoding struct{}

func (parallelColumnsEncoding) kind() Encoding { return EncodingColumns }

func (parallelColumnsEncoding) matches(inv *entity.Invoice) bool {
	return strings.TrimSpace(inv.Legacy.ProductIDs) != ""
}

func (parallelColumnsEncoding) decode(inv *entity.Invoice) ([]LineItem, error) {
	cols := inv.Legacy
	ids := splitColumn(cols.ProductIDs)
	names := splitColumn(cols.ProductNames)
	qtys := splitColumn(cols.Quantities)
	prices := splitColumn(cols.Prices)

	n := len(ids)
	if len(names) != n || len(qtys) != n || len(prices) != n {
		return nil, fmt.Errorf("columnas de longitud distinta: ids=%d nombres=%d cantidades=%d precios=%d",
			n, len(names), len(qtys), len(prices))
	}
	discounts, err := optionalColumn(cols.Discounts, n, "descuentos")
	if err != nil {
		return nil, err
	}
	costs, err := optionalColumn(cols.PurchasePrices, n, "precios de compra")
	if err != nil {
		return nil, err
	}

	items := make([]LineItem, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, newLineItem(
			ids[i],
			names[i],
			parseCell(prices[i]),
			decimal.NewNullDecimal(costs[i]),
			parseCell(qtys[i]),
			discounts[i],
			decimal.NullDecimal{},
			decimal.NullDecimal{},
		))
	}
	return items, nil
}

func splitColumn(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// optionalColumn columna opcional: si falta, todos los ítems valen 0.
func optionalColumn(raw string, n int, label string) ([]decimal.Decimal, error) {
	out := make([]decimal.Decimal, n)
	cells := splitColumn(raw)
	if cells == nil {
		return out, nil
	}
	if len(cells) != n {
		return nil, fmt.Errorf("columna de %s con %d valores, se esperaban %d", label, len(cells), n)
	}
	for i, c := range cells {
		out[i] = parseCell(c)
	}
	return out, nil
}

func parseCell(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
