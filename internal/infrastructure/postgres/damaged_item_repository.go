package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/pos-reports/internal/domain/entity"
	"github.com/jhoicas/pos-reports/internal/domain/repository"
)

var _ repository.DamagedItemRepository = (*DamagedItemRepo)(nil)

// DamagedItemRepo implementación de DamagedItemRepository.
type DamagedItemRepo struct {
	q Querier
}

// NewDamagedItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDamagedItemRepository(q Querier) *DamagedItemRepo {
	return &DamagedItemRepo{q: q}
}

// ListAll devuelve todos los registros de mercancía dañada.
func (r *DamagedItemRepo) ListAll(ctx context.Context) ([]*entity.DamagedItem, error) {
	query := `
		SELECT id, COALESCE(product_id, ''), date, COALESCE(value_loss, 0), COALESCE(quantity, 0), COALESCE(description, '')
		FROM damaged_items
		ORDER BY date DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list damaged items: %w", err)
	}
	defer rows.Close()

	var list []*entity.DamagedItem
	for rows.Next() {
		var d entity.DamagedItem
		if err := rows.Scan(&d.ID, &d.ProductID, &d.Date, &d.ValueLoss, &d.Quantity, &d.Description); err != nil {
			return nil, fmt.Errorf("scan damaged item: %w", err)
		}
		list = append(list, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list damaged items: %w", err)
	}
	return list, nil
}
