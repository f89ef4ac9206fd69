package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DamagedItem registro de mercancía dañada o perdida.
type DamagedItem struct {
	ID          string
	ProductID   string
	Date        time.Time
	ValueLoss   decimal.Decimal // pérdida valorizada
	Quantity    decimal.Decimal
	Description string
}
