package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/pos-reports/internal/domain/entity"
	"github.com/jhoicas/pos-reports/internal/domain/repository"
)

var _ repository.ExpenseRepository = (*ExpenseRepo)(nil)

// ExpenseRepo implementación de ExpenseRepository.
type ExpenseRepo struct {
	q Querier
}

// NewExpenseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewExpenseRepository(q Querier) *ExpenseRepo {
	return &ExpenseRepo{q: q}
}

// ListAll devuelve todos los gastos. Si la tabla no existe devuelve lista vacía.
func (r *ExpenseRepo) ListAll(ctx context.Context) ([]*entity.Expense, error) {
	query := `
		SELECT id, date, COALESCE(amount, 0), COALESCE(category, ''), COALESCE(description, '')
		FROM expenses
		ORDER BY date DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		if isUndefinedTable(err) {
			return []*entity.Expense{}, nil
		}
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	list := []*entity.Expense{}
	for rows.Next() {
		var e entity.Expense
		if err := rows.Scan(&e.ID, &e.Date, &e.Amount, &e.Category, &e.Description); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		list = append(list, &e)
	}
	if err := rows.Err(); err != nil {
		if isUndefinedTable(err) {
			return []*entity.Expense{}, nil
		}
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return list, nil
}
