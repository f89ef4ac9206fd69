// seed genera un script SQL con datos de demostración para el motor de reportes:
// catálogo, facturas en los tres formatos históricos de productos, mercancía dañada y gastos.
//
// Uso: go run ./cmd/seed [-days 30] [-seed 42] [-out internal/infrastructure/postgres/migrations/900_demo_data.sql] [-token]
// Con -token imprime además un JWT de administrador firmado con JWT_SECRET.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-reports/internal/domain/entity"
	"github.com/jhoicas/pos-reports/pkg/config"
	"github.com/jhoicas/pos-reports/pkg/jwt"
)

type seedProduct struct {
	id, sku, name string
	price         int64
	cost          int64 // 0 = sin precio de compra
}

var catalog = []seedProduct{
	{sku: "CAF-250", name: "Café molido 250g", price: 14500, cost: 9800},
	{sku: "ARZ-1K", name: "Arroz 1kg", price: 4200, cost: 3300},
	{sku: "ACE-900", name: "Aceite 900ml", price: 11900, cost: 8700},
	{sku: "PAN-TAJ", name: "Pan tajado", price: 6500, cost: 4100},
	{sku: "LEC-1L", name: "Leche 1L", price: 3900, cost: 3100},
	{sku: "HUE-30", name: "Huevos x30", price: 18900, cost: 15200},
	{sku: "CHO-100", name: "Chocolatina 100g", price: 5200},
	{sku: "JAB-3", name: "Jabón x3", price: 8900, cost: 6000},
}

var (
	paymentMethods = []string{"efectivo", "tarjeta", "transferencia", "nequi"}
	expenseKinds   = []struct{ category, description string }{
		{"servicios", "Energía"},
		{"servicios", "Agua"},
		{"arriendo", "Arriendo local"},
		{"nomina", "Pago auxiliar"},
		{"insumos", "Bolsas y empaques"},
	}
)

func main() {
	days := flag.Int("days", 30, "días hacia atrás a generar")
	seed := flag.Int64("seed", 42, "semilla para datos reproducibles")
	out := flag.String("out", "", "archivo de salida (vacío = stdout)")
	token := flag.Bool("token", false, "imprime un JWT de administrador para probar /api/reports")
	flag.Parse()

	var w io.Writer = os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		w = f
	}
	bw := bufio.NewWriter(w)

	g := newGenerator(*seed)
	if err := g.write(bw, *days, time.Now()); err != nil {
		fmt.Fprintf(os.Stderr, "Generar SQL: %v\n", err)
		os.Exit(1)
	}
	if err := bw.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	if *out != "" {
		fmt.Fprintf(os.Stderr, "Escrito: %s\n", *out)
	}

	if *token {
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
			os.Exit(1)
		}
		tok, err := jwt.Generate(cfg.JWT.Secret, g.newID(), g.newID(), "admin", cfg.JWT.Issuer, cfg.JWT.Expiration)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Generar token: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Authorization: Bearer %s\n", tok)
	}
}

type generator struct {
	rng *rand.Rand
}

func newGenerator(seed int64) *generator {
	return &generator{rng: rand.New(rand.NewSource(seed))}
}

// newID UUID v4 a partir del generador con semilla, para salidas reproducibles.
func (g *generator) newID() string {
	id, err := uuid.NewRandomFromReader(g.rng)
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

type seedLine struct {
	product  seedProduct
	quantity int64
	discPct  int64
}

func (g *generator) write(w io.Writer, days int, now time.Time) error {
	for i := range catalog {
		catalog[i].id = g.newID()
	}

	fmt.Fprintln(w, "-- Datos de demostración generados por cmd/seed")
	fmt.Fprintln(w, "BEGIN;")
	fmt.Fprintln(w)
	for _, p := range catalog {
		cost := "NULL"
		if p.cost > 0 {
			cost = fmt.Sprint(p.cost)
		}
		fmt.Fprintf(w, "INSERT INTO products (id, sku, name, selling_price, purchase_price) VALUES ('%s', '%s', '%s', %d, %s);\n",
			p.id, p.sku, quote(p.name), p.price, cost)
	}
	fmt.Fprintln(w)

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	n := 0
	for d := days - 1; d >= 0; d-- {
		day := today.AddDate(0, 0, -d)
		perDay := 3 + g.rng.Intn(6)
		for k := 0; k < perDay; k++ {
			at := day.Add(time.Duration(7+g.rng.Intn(14))*time.Hour + time.Duration(g.rng.Intn(60))*time.Minute)
			stmt, err := g.invoiceSQL(n, at)
			if err != nil {
				return err
			}
			fmt.Fprintln(w, stmt)
			n++
		}
		if g.rng.Intn(4) == 0 {
			p := catalog[g.rng.Intn(len(catalog))]
			qty := int64(1 + g.rng.Intn(3))
			fmt.Fprintf(w, "INSERT INTO damaged_items (id, product_id, date, value_loss, quantity, description) VALUES ('%s', '%s', '%s', %d, %d, '%s');\n",
				g.newID(), p.id, ts(day.Add(9*time.Hour)), qty*nonZero(p.cost, p.price), qty, quote("Averiado en bodega: "+p.name))
		}
		if g.rng.Intn(3) == 0 {
			e := expenseKinds[g.rng.Intn(len(expenseKinds))]
			fmt.Fprintf(w, "INSERT INTO expenses (id, date, amount, category, description) VALUES ('%s', '%s', %d, '%s', '%s');\n",
				g.newID(), ts(day.Add(18*time.Hour)), int64(20000+g.rng.Intn(180000)), e.category, quote(e.description))
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "COMMIT;")
	return nil
}

// invoiceSQL alterna el formato de productos según n: JSON texto, JSONB o columnas paralelas.
// Cada 15 facturas una queda anulada.
func (g *generator) invoiceSQL(n int, at time.Time) (string, error) {
	count := 1 + g.rng.Intn(4)
	lines := make([]seedLine, 0, count)
	for i := 0; i < count; i++ {
		l := seedLine{product: catalog[g.rng.Intn(len(catalog))], quantity: int64(1 + g.rng.Intn(5))}
		if g.rng.Intn(5) == 0 {
			l.discPct = int64(5 * (1 + g.rng.Intn(4)))
		}
		lines = append(lines, l)
	}

	subtotal, itemsDiscount := decimal.Zero, decimal.Zero
	for _, l := range lines {
		gross := decimal.NewFromInt(l.product.price * l.quantity)
		subtotal = subtotal.Add(gross)
		itemsDiscount = itemsDiscount.Add(gross.Mul(decimal.NewFromInt(l.discPct)).Div(decimal.NewFromInt(100)))
	}
	invoiceDiscount := decimal.Zero
	if itemsDiscount.IsZero() && g.rng.Intn(6) == 0 {
		invoiceDiscount = subtotal.Mul(decimal.NewFromInt(10)).Div(decimal.NewFromInt(100)).Round(0)
	}
	total := subtotal.Sub(itemsDiscount).Sub(invoiceDiscount)

	productsData, productsJSON := "NULL", "NULL"
	var cols [6]string
	for i := range cols {
		cols[i] = "NULL"
	}

	switch n % 3 {
	case 0:
		raw, err := json.Marshal(rawItems(lines))
		if err != nil {
			return "", err
		}
		productsData = "'" + quote(string(raw)) + "'"
	case 1:
		raw, err := json.Marshal(rawItems(lines))
		if err != nil {
			return "", err
		}
		productsJSON = "'" + quote(string(raw)) + "'::jsonb"
	default:
		var ids, names, qtys, prices, discs, costs []string
		for _, l := range lines {
			ids = append(ids, l.product.id)
			names = append(names, strings.ReplaceAll(l.product.name, ",", " "))
			qtys = append(qtys, fmt.Sprint(l.quantity))
			prices = append(prices, fmt.Sprint(l.product.price))
			discs = append(discs, fmt.Sprint(l.discPct))
			costs = append(costs, fmt.Sprint(l.product.cost))
		}
		for i, col := range [][]string{ids, names, qtys, prices, discs, costs} {
			cols[i] = "'" + quote(strings.Join(col, ",")) + "'"
		}
	}

	deletedAt := "NULL"
	if n%15 == 14 {
		deletedAt = "'" + ts(at.Add(time.Hour)) + "'"
	}

	return fmt.Sprintf(
		"INSERT INTO invoices (id, date, subtotal, items_discount, invoice_discount, total, payment_status, payment_method, customer_name, "+
			"products_data, products, product_ids, product_names, quantities, prices, discounts, purchase_prices, deleted_at) "+
			"VALUES ('%s', '%s', %s, %s, %s, %s, '%s', '%s', '%s', %s, %s, %s, %s, %s, %s, %s, %s, %s);",
		g.newID(), ts(at), subtotal, itemsDiscount, invoiceDiscount, total,
		paymentStatus(n), paymentMethods[g.rng.Intn(len(paymentMethods))], quote("Cliente mostrador"),
		productsData, productsJSON, cols[0], cols[1], cols[2], cols[3], cols[4], cols[5], deletedAt,
	), nil
}

// rawItems forma JSON de los ítems; el costo se omite cuando el producto no lo tiene.
func rawItems(lines []seedLine) []entity.RawLineItem {
	items := make([]entity.RawLineItem, 0, len(lines))
	for _, l := range lines {
		item := entity.RawLineItem{
			ProductID:    entity.FlexibleID(l.product.id),
			ProductName:  l.product.name,
			SellingPrice: decimal.NewNullDecimal(decimal.NewFromInt(l.product.price)),
			Quantity:     decimal.NewFromInt(l.quantity),
			Discount:     decimal.NewFromInt(l.discPct),
		}
		if l.product.cost > 0 {
			item.PurchasePrice = decimal.NewNullDecimal(decimal.NewFromInt(l.product.cost))
		}
		items = append(items, item)
	}
	return items
}

// paymentStatus casi todas pagadas; una de cada diez pendiente y otra abonada.
func paymentStatus(n int) string {
	switch n % 10 {
	case 8:
		return entity.PaymentStatusPartial
	case 9:
		return entity.PaymentStatusPending
	}
	return entity.PaymentStatusPaid
}

func ts(t time.Time) string { return t.Format(time.RFC3339) }

func quote(s string) string { return strings.ReplaceAll(s, "'", "''") }

func nonZero(v, fallback int64) int64 {
	if v != 0 {
		return v
	}
	return fallback
}
