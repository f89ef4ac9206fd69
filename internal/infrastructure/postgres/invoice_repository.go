package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-reports/internal/domain/entity"
	"github.com/jhoicas/pos-reports/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const selectInvoices = `
	SELECT id, date,
	       COALESCE(subtotal, 0), COALESCE(items_discount, 0), COALESCE(invoice_discount, 0),
	       COALESCE(discount_percentage, 0), COALESCE(discount, 0), COALESCE(total, 0),
	       payment_status, payment_method, customer_id, customer_name,
	       products_data, products,
	       product_ids, product_names, quantities, prices, discounts, purchase_prices,
	       deleted_at, created_at
	FROM invoices
	ORDER BY date DESC`

// ListAll devuelve todas las facturas, incluidas las anuladas.
// Los tres formatos de productos se cargan tal cual; el normalizador decide cuál usar.
func (r *InvoiceRepo) ListAll(ctx context.Context) ([]*entity.Invoice, error) {
	rows, err := r.q.Query(ctx, selectInvoices)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return list, nil
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var (
		inv                                     entity.Invoice
		status, method, customerID, customer    *string
		productsData                            *string
		productsJSON                            []byte
		ids, names, qtys, prices, discs, costs  *string
		deletedAt                               *time.Time
		subtotal, itemsDisc, invDisc, pct, disc decimal.Decimal
		total                                   decimal.Decimal
	)
	err := row.Scan(
		&inv.ID, &inv.Date,
		&subtotal, &itemsDisc, &invDisc, &pct, &disc, &total,
		&status, &method, &customerID, &customer,
		&productsData, &productsJSON,
		&ids, &names, &qtys, &prices, &discs, &costs,
		&deletedAt, &inv.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	inv.Subtotal = subtotal
	inv.ItemsDiscount = itemsDisc
	inv.InvoiceDiscount = invDisc
	inv.DiscountPercentage = pct
	inv.Discount = disc
	inv.Total = total
	inv.PaymentStatus = derefString(status)
	inv.PaymentMethod = derefString(method)
	inv.CustomerID = derefString(customerID)
	inv.CustomerName = derefString(customer)
	inv.ProductsData = derefString(productsData)
	inv.DeletedAt = deletedAt
	inv.Legacy = entity.LegacyProductColumns{
		ProductIDs:     derefString(ids),
		ProductNames:   derefString(names),
		Quantities:     derefString(qtys),
		Prices:         derefString(prices),
		Discounts:      derefString(discs),
		PurchasePrices: derefString(costs),
	}

	if len(productsJSON) > 0 {
		if err := json.Unmarshal(productsJSON, &inv.Products); err != nil {
			// JSONB ilegible: se deja como texto para que el normalizador lo reporte.
			inv.Products = nil
			if inv.ProductsData == "" {
				inv.ProductsData = string(productsJSON)
			}
		}
	}
	return &inv, nil
}
