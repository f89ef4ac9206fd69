package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense gasto operativo (arriendo, servicios, nómina...).
type Expense struct {
	ID          string
	Date        time.Time
	Amount      decimal.Decimal
	Category    string
	Description string
}
