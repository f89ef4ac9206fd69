package repository

import (
	"context"

	"github.com/jhoicas/pos-reports/internal/domain/entity"
)

// InvoiceRepository puerto de lectura de facturas para el motor de reportes.
type InvoiceRepository interface {
	// ListAll devuelve todas las facturas, incluidas las anuladas (DeletedAt != nil);
	// el filtrado por periodo y borrado lógico lo hace el caso de uso.
	ListAll(ctx context.Context) ([]*entity.Invoice, error)
}
