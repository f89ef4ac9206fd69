package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de pago de una factura POS.
const (
	PaymentStatusPaid    = "paid"
	PaymentStatusPending = "pending"
	PaymentStatusPartial = "partial"
)

// Invoice representa la cabecera de una factura ya persistida (solo lectura para reportes).
//
// Los productos vendidos pueden venir en tres formatos heredados que conviven en la base:
//   - ProductsData: arreglo JSON serializado como texto (formato canónico antiguo).
//   - Products: arreglo ya materializado (columna JSONB).
//   - Legacy: cadenas paralelas separadas por coma (primera versión del POS).
type Invoice struct {
	ID                 string
	Date               time.Time
	Subtotal           decimal.Decimal
	ItemsDiscount      decimal.Decimal // suma de descuentos por ítem
	InvoiceDiscount    decimal.Decimal // descuento global de la factura
	DiscountPercentage decimal.Decimal // % global explícito (0 si no aplica)
	Discount           decimal.Decimal // campo genérico heredado
	Total              decimal.Decimal // se asume ≈ Subtotal - ItemsDiscount - InvoiceDiscount
	PaymentStatus      string
	PaymentMethod      string
	CustomerID         string
	CustomerName       string
	ProductsData       string
	Products           []RawLineItem
	Legacy             LegacyProductColumns
	DeletedAt          *time.Time // borrado lógico
	CreatedAt          time.Time
}

// IsDeleted indica si la factura fue anulada con borrado lógico.
func (i *Invoice) IsDeleted() bool {
	return i.DeletedAt != nil
}

// LegacyProductColumns columnas paralelas del formato más antiguo.
// Cada columna es una lista separada por comas; la posición i de todas describe el mismo ítem.
type LegacyProductColumns struct {
	ProductIDs     string
	ProductNames   string
	Quantities     string
	Prices         string
	Discounts      string // opcional
	PurchasePrices string // opcional
}
