package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// PurchasePrice es el costo de compra vigente; puede faltar en productos antiguos.
type Product struct {
	ID            string
	SKU           string
	Name          string
	SellingPrice  decimal.Decimal
	PurchasePrice decimal.NullDecimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
