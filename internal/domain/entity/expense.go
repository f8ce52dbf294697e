package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense un gasto del negocio. Los recurrentes entran al costo fijo diario
// del análisis de punto de equilibrio; todos entran al reporte diario por fecha.
type Expense struct {
	ID          int64
	Name        string
	Description string
	Amount      decimal.Decimal
	Category    string
	Recurring   bool
	Date        time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Active      bool
}

// ExpensePatch campos opcionales para actualización parcial (nil = no tocar).
type ExpensePatch struct {
	Name        *string
	Description *string
	Amount      *decimal.Decimal
	Category    *string
	Recurring   *bool
	Date        *time.Time
}
