package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/puntoventa/internal/domain/entity"
	"github.com/jhoicas/puntoventa/internal/domain/repository"
)

var _ repository.InventoryTransactionRepository = (*InventoryTransactionRepo)(nil)

const invTxCols = `id, ingredient_id, type, quantity, unit_cost, note, sale_id, batch_id,
	created_at, updated_at, is_active`

// InventoryTransactionRepo ledger de stock sobre SQLite. Estilo append: las
// correcciones se escriben como movimientos compensatorios, nunca como updates.
type InventoryTransactionRepo struct {
	q Querier
}

// NewInventoryTransactionRepository construye el adaptador. Pasar conexión o tx (Querier).
func NewInventoryTransactionRepository(q Querier) *InventoryTransactionRepo {
	return &InventoryTransactionRepo{q: q}
}

func scanInventoryTx(s interface{ Scan(dest ...any) error }) (*entity.InventoryTransaction, error) {
	var it entity.InventoryTransaction
	var unitCost decimal.NullDecimal
	var saleID sql.NullInt64
	err := s.Scan(
		&it.ID, &it.IngredientID, &it.Type, &it.Quantity, &unitCost, &it.Note,
		&saleID, &it.BatchID, &it.CreatedAt, &it.UpdatedAt, &it.Active,
	)
	if err != nil {
		return nil, err
	}
	if unitCost.Valid {
		v := unitCost.Decimal
		it.UnitCost = &v
	}
	if saleID.Valid {
		v := saleID.Int64
		it.SaleID = &v
	}
	return &it, nil
}

// Create registra un movimiento en el ledger.
func (r *InventoryTransactionRepo) Create(it *entity.InventoryTransaction) error {
	now := time.Now().UTC()
	res, err := r.q.Exec(`
		INSERT INTO inventory_transactions (ingredient_id, type, quantity, unit_cost,
			note, sale_id, batch_id, created_at, updated_at, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 1)`,
		it.IngredientID, it.Type, it.Quantity, it.UnitCost, it.Note, it.SaleID,
		it.BatchID, now, now,
	)
	if err != nil {
		return fmt.Errorf("insert inventory transaction: %w", err)
	}
	it.ID, err = res.LastInsertId()
	if err != nil {
		return err
	}
	it.CreatedAt, it.UpdatedAt, it.Active = now, now, true
	return nil
}

// GetByID obtiene un movimiento por ID; nil si no existe.
func (r *InventoryTransactionRepo) GetByID(id int64) (*entity.InventoryTransaction, error) {
	it, err := scanInventoryTx(r.q.QueryRow(`SELECT `+invTxCols+`
		FROM inventory_transactions WHERE id = ? AND is_active = 1`, id))
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get inventory transaction: %w", err)
	}
	return it, nil
}

func (r *InventoryTransactionRepo) Count() (int64, error) {
	return activeCount(r.q, "inventory_transactions")
}

func (r *InventoryTransactionRepo) queryTxs(query string, args ...any) ([]*entity.InventoryTransaction, error) {
	rows, err := r.q.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query inventory transactions: %w", err)
	}
	defer rows.Close()

	var out []*entity.InventoryTransaction
	for rows.Next() {
		it, err := scanInventoryTx(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory transaction: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// ListByIngredient movimientos de un ingrediente, más recientes primero.
func (r *InventoryTransactionRepo) ListByIngredient(ingredientID int64, limit int) ([]*entity.InventoryTransaction, error) {
	if limit <= 0 {
		limit = 50
	}
	return r.queryTxs(`SELECT `+invTxCols+`
		FROM inventory_transactions
		WHERE ingredient_id = ? AND is_active = 1
		ORDER BY created_at DESC, id DESC LIMIT ?`, ingredientID, limit)
}

// ListBySale movimientos originados por una venta (descuento y reversión).
func (r *InventoryTransactionRepo) ListBySale(saleID int64) ([]*entity.InventoryTransaction, error) {
	return r.queryTxs(`SELECT `+invTxCols+`
		FROM inventory_transactions
		WHERE sale_id = ? AND is_active = 1
		ORDER BY id ASC`, saleID)
}
