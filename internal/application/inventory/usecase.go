package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/puntoventa/internal/domain"
	"github.com/jhoicas/puntoventa/internal/domain/entity"
	"github.com/jhoicas/puntoventa/internal/domain/repository"
)

// UseCase registra movimientos manuales de stock (entrada, salida, ajuste).
// Cada movimiento muta el saldo vía AdjustStock y deja su fila en el ledger,
// ambos dentro de la misma transacción.
type UseCase struct {
	txRunner repository.TxRunner
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner repository.TxRunner) *UseCase {
	return &UseCase{txRunner: txRunner}
}

// RegisterStockIn entrada de mercancía: suma qty al stock. UnitCost opcional
// (costo de compra para trazabilidad; no modifica el costo del ingrediente).
func (uc *UseCase) RegisterStockIn(ctx context.Context, ingredientID int64, qty decimal.Decimal, unitCost *decimal.Decimal, note string) error {
	if !qty.IsPositive() {
		return fmt.Errorf("%w: cantidad debe ser > 0", domain.ErrInvalidInput)
	}
	return uc.register(ctx, ingredientID, entity.MovementStockIn, qty, unitCost, note, false)
}

// RegisterStockOut salida manual (merma, consumo interno): resta qty del stock.
// Rechaza la salida si el saldo es insuficiente.
func (uc *UseCase) RegisterStockOut(ctx context.Context, ingredientID int64, qty decimal.Decimal, note string) error {
	if !qty.IsPositive() {
		return fmt.Errorf("%w: cantidad debe ser > 0", domain.ErrInvalidInput)
	}
	return uc.register(ctx, ingredientID, entity.MovementStockOut, qty.Neg(), nil, note, true)
}

// RegisterAdjustment ajuste por conteo físico: aplica delta con su signo.
func (uc *UseCase) RegisterAdjustment(ctx context.Context, ingredientID int64, delta decimal.Decimal, note string) error {
	if delta.IsZero() {
		return fmt.Errorf("%w: ajuste de cero", domain.ErrInvalidInput)
	}
	return uc.register(ctx, ingredientID, entity.MovementAdjustment, delta, nil, note, false)
}

// register aplica el delta al saldo y escribe el movimiento en el ledger.
func (uc *UseCase) register(ctx context.Context, ingredientID int64, movType string, delta decimal.Decimal, unitCost *decimal.Decimal, note string, checkStock bool) error {
	return uc.txRunner.Run(ctx, func(r *repository.Repos) error {
		ing, err := r.Ingredients.GetByID(ingredientID)
		if err != nil {
			return err
		}
		if ing == nil {
			return fmt.Errorf("%w: ingrediente %d", domain.ErrNotFound, ingredientID)
		}
		if checkStock && ing.QuantityInStock.Add(delta).IsNegative() {
			return fmt.Errorf("%w: %s tiene %s", domain.ErrInsufficientStock, ing.Name, ing.QuantityInStock)
		}

		if _, err := r.Ingredients.AdjustStock(ingredientID, delta); err != nil {
			return err
		}
		mov := &entity.InventoryTransaction{
			IngredientID: ingredientID,
			Type:         movType,
			Quantity:     delta,
			UnitCost:     unitCost,
			Note:         note,
			BatchID:      uuid.New().String(),
		}
		return r.InventoryTxs.Create(mov)
	})
}
