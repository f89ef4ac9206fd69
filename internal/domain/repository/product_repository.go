package repository

import (
	"context"

	"github.com/jhoicas/pos-reports/internal/domain/entity"
)

// ProductRepository puerto de lectura del catálogo de productos.
type ProductRepository interface {
	ListAll(ctx context.Context) ([]*entity.Product, error)
}
