package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de salario.
const (
	WageDaily   = "daily"
	WageHourly  = "hourly"
	WageMonthly = "monthly"
)

// HoursPerDay y DaysPerMonth son los factores de conversión a salario diario
// usados por el reporte de utilidad y el punto de equilibrio.
const (
	HoursPerDay  = 8
	DaysPerMonth = 30
)

// ValidWageType indica si el tipo de salario pertenece al catálogo.
func ValidWageType(t string) bool {
	switch t {
	case WageDaily, WageHourly, WageMonthly:
		return true
	}
	return false
}

// Employee un empleado. WageType/WageAmount alimentan la estimación de costo
// laboral diario; PINHash guarda el bcrypt del PIN de acceso (la pantalla de
// login vive fuera de esta capa).
type Employee struct {
	ID         int64
	Name       string
	Role       string
	WageType   string // daily, hourly, monthly
	WageAmount decimal.Decimal
	PINHash    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Active     bool
}

// DailyWage convierte el salario al equivalente diario:
// daily tal cual, hourly*8, monthly/30.
func (e Employee) DailyWage() decimal.Decimal {
	switch e.WageType {
	case WageHourly:
		return e.WageAmount.Mul(decimal.NewFromInt(HoursPerDay))
	case WageMonthly:
		return e.WageAmount.Div(decimal.NewFromInt(DaysPerMonth))
	default:
		return e.WageAmount
	}
}

// EmployeePatch campos opcionales para actualización parcial (nil = no tocar).
type EmployeePatch struct {
	Name       *string
	Role       *string
	WageType   *string
	WageAmount *decimal.Decimal
}
