package repository

import (
	"context"

	"github.com/jhoicas/pos-reports/internal/domain/entity"
)

// DamagedItemRepository puerto de lectura de mercancía dañada.
type DamagedItemRepository interface {
	ListAll(ctx context.Context) ([]*entity.DamagedItem, error)
}
