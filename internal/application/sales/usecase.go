package sales

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/puntoventa/internal/domain"
	"github.com/jhoicas/puntoventa/internal/domain/costing"
	"github.com/jhoicas/puntoventa/internal/domain/entity"
	"github.com/jhoicas/puntoventa/internal/domain/repository"
)

// UseCase orquesta la operación más delicada del sistema: crear una venta con
// descuento de stock punto-en-el-tiempo, y anularla con reversión exacta.
// Ambas son multi-tabla y van completas dentro de una transacción.
type UseCase struct {
	txRunner repository.TxRunner
	sales    repository.SaleRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner repository.TxRunner, sales repository.SaleRepository) *UseCase {
	return &UseCase{txRunner: txRunner, sales: sales}
}

// CreateSaleInput entrada del checkout. La capa de presentación ya validó
// nombres, precios y que el cambio no sea negativo; aquí solo se verifica la
// forma mínima (líneas presentes, método de pago del catálogo).
type CreateSaleInput struct {
	Lines           []entity.NewSaleLine
	DiscountAmount  decimal.Decimal
	DiscountPercent decimal.Decimal
	PaymentMethod   string
	AmountReceived  decimal.Decimal
	Notes           string
}

// CreateSale calcula los totales, inserta la venta y sus líneas y, por cada
// producto con inventario rastreado y receta vinculada, descuenta del stock
// recipeQty × qtyVendida por ingrediente dejando su fila en el ledger. Si algo
// falla a mitad de camino no queda NADA: ni venta, ni líneas, ni stock tocado.
func (uc *UseCase) CreateSale(ctx context.Context, input CreateSaleInput) (*entity.Sale, error) {
	if len(input.Lines) == 0 {
		return nil, fmt.Errorf("%w: venta sin líneas", domain.ErrInvalidInput)
	}
	if !entity.ValidPaymentMethod(input.PaymentMethod) {
		return nil, fmt.Errorf("%w: método de pago %q", domain.ErrInvalidInput, input.PaymentMethod)
	}
	for _, l := range input.Lines {
		if l.Quantity <= 0 {
			return nil, fmt.Errorf("%w: cantidad debe ser > 0", domain.ErrInvalidInput)
		}
	}

	costLines := make([]costing.SaleLine, 0, len(input.Lines))
	for _, l := range input.Lines {
		costLines = append(costLines, costing.SaleLine{Quantity: l.Quantity, UnitPrice: l.UnitPrice})
	}
	totals := costing.ComputeSaleTotals(costLines, input.DiscountAmount, input.DiscountPercent, input.AmountReceived)

	reference := uuid.New().String()
	var sale *entity.Sale
	err := uc.txRunner.Run(ctx, func(r *repository.Repos) error {
		sale = &entity.Sale{
			Reference:       reference,
			Subtotal:        totals.Subtotal,
			DiscountAmount:  input.DiscountAmount,
			DiscountPercent: input.DiscountPercent,
			Total:           totals.Total,
			PaymentMethod:   input.PaymentMethod,
			AmountReceived:  input.AmountReceived,
			ChangeAmount:    totals.ChangeAmount,
			Notes:           input.Notes,
		}
		if err := r.Sales.Create(sale); err != nil {
			return err
		}

		for _, l := range input.Lines {
			product, err := r.Products.GetByID(l.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return fmt.Errorf("%w: producto %d", domain.ErrNotFound, l.ProductID)
			}

			qty := decimal.NewFromInt(int64(l.Quantity))
			item := &entity.SaleItem{
				SaleID:    sale.ID,
				ProductID: l.ProductID,
				Quantity:  l.Quantity,
				UnitPrice: l.UnitPrice,
				Subtotal:  l.UnitPrice.Mul(qty),
			}
			if err := r.Sales.CreateItem(item); err != nil {
				return err
			}

			if !product.TrackInventory || product.RecipeID == nil {
				continue
			}
			if err := deductRecipeStock(r, product, qty, sale.ID, reference); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// deductRecipeStock descuenta del stock los ingredientes de la receta del
// producto y deja un movimiento tipo `sale` por cada uno, en la misma tx.
func deductRecipeStock(r *repository.Repos, product *entity.Product, qty decimal.Decimal, saleID int64, batchID string) error {
	items, err := r.Recipes.ListItems(*product.RecipeID)
	if err != nil {
		return err
	}
	for _, ri := range items {
		// Vender exige el ingrediente activo; AdjustStock por sí solo no lo filtra.
		ing, err := r.Ingredients.GetByID(ri.IngredientID)
		if err != nil {
			return err
		}
		if ing == nil {
			return fmt.Errorf("%w: ingrediente %d", domain.ErrNotFound, ri.IngredientID)
		}

		delta := ri.Quantity.Mul(qty).Neg()
		if _, err := r.Ingredients.AdjustStock(ri.IngredientID, delta); err != nil {
			return err
		}
		mov := &entity.InventoryTransaction{
			IngredientID: ri.IngredientID,
			Type:         entity.MovementSale,
			Quantity:     delta,
			Note:         fmt.Sprintf("venta de %s", product.Name),
			SaleID:       &saleID,
			BatchID:      batchID,
		}
		if err := r.InventoryTxs.Create(mov); err != nil {
			return err
		}
	}
	return nil
}

// VoidSale anula la venta: borra en blando la venta y sus líneas, restaura el
// stock de cada ingrediente descontado y deja el movimiento compensatorio en el
// ledger, todo en una transacción. La reversión se toma del propio ledger (los
// movimientos registrados al vender), no de la receta actual: si la receta
// cambió después de la venta, se restaura exactamente lo que se descontó.
// La reversión alcanza también ingredientes dados de baja después de la venta:
// la anulación es el único cambio de estado de la venta y no puede quedar
// bloqueada por un borrado blando posterior.
// Transición única y unidireccional: activa -> anulada.
func (uc *UseCase) VoidSale(ctx context.Context, id int64) error {
	return uc.txRunner.Run(ctx, func(r *repository.Repos) error {
		sale, err := r.Sales.GetByID(id)
		if err != nil {
			return err
		}
		if sale == nil {
			return fmt.Errorf("%w: venta %d", domain.ErrNotFound, id)
		}

		deductions, err := r.InventoryTxs.ListBySale(id)
		if err != nil {
			return err
		}
		batchID := uuid.New().String()
		for _, mov := range deductions {
			if mov.Type != entity.MovementSale {
				continue // ya es una compensación u otro movimiento
			}
			restore := mov.Quantity.Neg()
			ok, err := r.Ingredients.AdjustStock(mov.IngredientID, restore)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: ingrediente %d", domain.ErrNotFound, mov.IngredientID)
			}
			comp := &entity.InventoryTransaction{
				IngredientID: mov.IngredientID,
				Type:         entity.MovementStockIn,
				Quantity:     restore,
				Note:         fmt.Sprintf("reversión por anulación de venta %s", sale.Reference),
				SaleID:       &id,
				BatchID:      batchID,
			}
			if err := r.InventoryTxs.Create(comp); err != nil {
				return err
			}
		}

		if err := r.Sales.DeactivateItems(id); err != nil {
			return err
		}
		if _, err := r.Sales.Delete(id); err != nil {
			return err
		}
		return nil
	})
}

// GetWithItems lectura de la venta con líneas resueltas (pasa al repositorio).
func (uc *UseCase) GetWithItems(id int64) (*entity.SaleWithItems, error) {
	return uc.sales.GetWithItems(id)
}
