package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del ledger de inventario.
const (
	MovementStockIn    = "stock_in"
	MovementStockOut   = "stock_out"
	MovementAdjustment = "adjustment"
	MovementSale       = "sale"
)

// ValidMovementType indica si el tipo pertenece al catálogo soportado.
func ValidMovementType(t string) bool {
	switch t {
	case MovementStockIn, MovementStockOut, MovementAdjustment, MovementSale:
		return true
	}
	return false
}

// InventoryTransaction entrada del ledger de stock. Cada mutación de
// QuantityInStock deja exactamente una fila aquí, en la misma transacción SQL.
// Quantity lleva el signo del delta aplicado (negativo en salidas y ventas).
// SaleID enlaza los movimientos originados por una venta (descuento y reversión).
type InventoryTransaction struct {
	ID           int64
	IngredientID int64
	Type         string // stock_in, stock_out, adjustment, sale
	Quantity     decimal.Decimal
	UnitCost     *decimal.Decimal
	Note         string
	SaleID       *int64
	BatchID      string // UUID que agrupa los movimientos de una misma operación
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Active       bool
}
