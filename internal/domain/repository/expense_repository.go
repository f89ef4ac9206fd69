package repository

import (
	"context"

	"github.com/jhoicas/pos-reports/internal/domain/entity"
)

// ExpenseRepository puerto de lectura de gastos. Es opcional: instalaciones antiguas
// no tienen la tabla y el reporte trata su ausencia como lista vacía.
type ExpenseRepository interface {
	ListAll(ctx context.Context) ([]*entity.Expense, error)
}
