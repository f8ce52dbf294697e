package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Unidades de medida de un ingrediente.
const (
	UnitPcs  = "pcs"
	UnitKg   = "kg"
	UnitG    = "g"
	UnitMg   = "mg"
	UnitL    = "l"
	UnitMl   = "ml"
	UnitTbsp = "tbsp"
	UnitTsp  = "tsp"
	UnitCup  = "cup"
	UnitOz   = "oz"
)

// ValidUnit indica si la unidad pertenece al catálogo soportado.
func ValidUnit(u string) bool {
	switch u {
	case UnitPcs, UnitKg, UnitG, UnitMg, UnitL, UnitMl, UnitTbsp, UnitTsp, UnitCup, UnitOz:
		return true
	}
	return false
}

// Ingredient representa una materia prima del inventario.
// QuantityInStock es un saldo corriente: solo se muta vía AdjustStock
// (entradas, salidas, ajustes, descuento por venta y reversión de anulación).
type Ingredient struct {
	ID                int64
	Name              string
	Description       string
	CostPerUnit       decimal.Decimal // costo por unidad de medida
	Unit              string          // pcs, kg, g, mg, l, ml, tbsp, tsp, cup, oz
	QuantityInStock   decimal.Decimal
	LowStockThreshold decimal.Decimal
	Supplier          string
	ExpirationDate    *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
	Active            bool
}

// IngredientPatch campos opcionales para actualización parcial (nil = no tocar).
type IngredientPatch struct {
	Name              *string
	Description       *string
	CostPerUnit       *decimal.Decimal
	Unit              *string
	QuantityInStock   *decimal.Decimal // solo en edición completa; el flujo normal usa AdjustStock
	LowStockThreshold *decimal.Decimal
	Supplier          *string
	ExpirationDate    *time.Time
}
