package repository

import "github.com/jhoicas/puntoventa/internal/domain/entity"

// InventoryTransactionRepository define el puerto del ledger de stock (DIP).
// El ledger es de estilo append: no hay update ni delete de movimientos;
// las correcciones se registran como movimientos compensatorios.
type InventoryTransactionRepository interface {
	Create(tx *entity.InventoryTransaction) error
	GetByID(id int64) (*entity.InventoryTransaction, error)
	Count() (int64, error)
	// ListByIngredient movimientos de un ingrediente, más recientes primero.
	ListByIngredient(ingredientID int64, limit int) ([]*entity.InventoryTransaction, error)
	// ListBySale movimientos originados por una venta (descuento y reversión).
	ListBySale(saleID int64) ([]*entity.InventoryTransaction, error)
}
