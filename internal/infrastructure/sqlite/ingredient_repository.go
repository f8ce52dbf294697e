package sqlite

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/puntoventa/internal/domain/entity"
	"github.com/jhoicas/puntoventa/internal/domain/repository"
)

var _ repository.IngredientRepository = (*IngredientRepo)(nil)

const ingredientCols = `id, name, description, cost_per_unit, unit, quantity_in_stock,
	low_stock_threshold, supplier, expiration_date, created_at, updated_at, is_active`

// IngredientRepo implementación del puerto IngredientRepository sobre SQLite
// (usable con la conexión compartida o con una tx).
type IngredientRepo struct {
	q Querier
}

// NewIngredientRepository construye el adaptador. Pasar conexión o tx (Querier).
func NewIngredientRepository(q Querier) *IngredientRepo {
	return &IngredientRepo{q: q}
}

func scanIngredient(s interface{ Scan(dest ...any) error }) (*entity.Ingredient, error) {
	var ing entity.Ingredient
	var exp sql.NullTime
	err := s.Scan(
		&ing.ID, &ing.Name, &ing.Description, &ing.CostPerUnit, &ing.Unit,
		&ing.QuantityInStock, &ing.LowStockThreshold, &ing.Supplier, &exp,
		&ing.CreatedAt, &ing.UpdatedAt, &ing.Active,
	)
	if err != nil {
		return nil, err
	}
	if exp.Valid {
		t := exp.Time
		ing.ExpirationDate = &t
	}
	return &ing, nil
}

func (r *IngredientRepo) queryIngredients(query string, args ...any) ([]*entity.Ingredient, error) {
	rows, err := r.q.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query ingredients: %w", err)
	}
	defer rows.Close()

	var out []*entity.Ingredient
	for rows.Next() {
		ing, err := scanIngredient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ingredient: %w", err)
		}
		out = append(out, ing)
	}
	return out, rows.Err()
}

// GetAll ingredientes activos, más recientes primero.
func (r *IngredientRepo) GetAll() ([]*entity.Ingredient, error) {
	return r.queryIngredients(`SELECT ` + ingredientCols + `
		FROM ingredients WHERE is_active = 1 ORDER BY created_at DESC, id DESC`)
}

// GetByID obtiene un ingrediente activo por ID; nil si no existe o está inactivo.
func (r *IngredientRepo) GetByID(id int64) (*entity.Ingredient, error) {
	ing, err := scanIngredient(r.q.QueryRow(`SELECT `+ingredientCols+`
		FROM ingredients WHERE id = ? AND is_active = 1`, id))
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get ingredient: %w", err)
	}
	return ing, nil
}

func (r *IngredientRepo) Exists(id int64) (bool, error) {
	return rowExists(r.q, "ingredients", id)
}

func (r *IngredientRepo) Count() (int64, error) {
	return activeCount(r.q, "ingredients")
}

// Create persiste un nuevo ingrediente y asigna ID y timestamps.
func (r *IngredientRepo) Create(ing *entity.Ingredient) error {
	now := time.Now().UTC()
	res, err := r.q.Exec(`
		INSERT INTO ingredients (name, description, cost_per_unit, unit, quantity_in_stock,
			low_stock_threshold, supplier, expiration_date, created_at, updated_at, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1)`,
		ing.Name, ing.Description, ing.CostPerUnit, ing.Unit, ing.QuantityInStock,
		ing.LowStockThreshold, ing.Supplier, ing.ExpirationDate, now, now,
	)
	if err != nil {
		return fmt.Errorf("insert ingredient: %w", err)
	}
	ing.ID, err = res.LastInsertId()
	if err != nil {
		return err
	}
	ing.CreatedAt, ing.UpdatedAt, ing.Active = now, now, true
	return nil
}

// Update parchea solo los campos provistos y refresca updated_at. Devuelve nil
// si la fila no existe o está inactiva; con parche vacío devuelve la fila actual.
func (r *IngredientRepo) Update(id int64, patch entity.IngredientPatch) (*entity.Ingredient, error) {
	var sets []string
	var args []any
	add := func(col string, v any) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}
	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.CostPerUnit != nil {
		add("cost_per_unit", *patch.CostPerUnit)
	}
	if patch.Unit != nil {
		add("unit", *patch.Unit)
	}
	if patch.QuantityInStock != nil {
		add("quantity_in_stock", *patch.QuantityInStock)
	}
	if patch.LowStockThreshold != nil {
		add("low_stock_threshold", *patch.LowStockThreshold)
	}
	if patch.Supplier != nil {
		add("supplier", *patch.Supplier)
	}
	if patch.ExpirationDate != nil {
		add("expiration_date", *patch.ExpirationDate)
	}
	if len(sets) == 0 {
		return r.GetByID(id)
	}

	add("updated_at", time.Now().UTC())
	args = append(args, id)
	_, err := r.q.Exec(`UPDATE ingredients SET `+strings.Join(sets, ", ")+`
		WHERE id = ? AND is_active = 1`, args...)
	if err != nil {
		return nil, fmt.Errorf("update ingredient: %w", err)
	}
	return r.GetByID(id)
}

// Delete borrado blando; devuelve si alguna fila cambió.
func (r *IngredientRepo) Delete(id int64) (bool, error) {
	return setActive(r.q, "ingredients", id, false)
}

// Restore reactiva una fila borrada en blando.
func (r *IngredientRepo) Restore(id int64) (bool, error) {
	return setActive(r.q, "ingredients", id, true)
}

// GetLowStock ingredientes activos con stock <= umbral, el más urgente primero.
func (r *IngredientRepo) GetLowStock() ([]*entity.Ingredient, error) {
	return r.queryIngredients(`SELECT ` + ingredientCols + `
		FROM ingredients
		WHERE is_active = 1 AND quantity_in_stock <= low_stock_threshold
		ORDER BY quantity_in_stock ASC`)
}

// GetExpiringSoon ingredientes activos con vencimiento dentro de `days` días.
func (r *IngredientRepo) GetExpiringSoon(days int) ([]*entity.Ingredient, error) {
	now := time.Now().UTC()
	return r.queryIngredients(`SELECT `+ingredientCols+`
		FROM ingredients
		WHERE is_active = 1 AND expiration_date IS NOT NULL
		  AND expiration_date >= ? AND expiration_date <= ?
		ORDER BY expiration_date ASC`,
		now, now.AddDate(0, 0, days))
}

// Search subcadena del nombre sin distinguir mayúsculas.
func (r *IngredientRepo) Search(text string) ([]*entity.Ingredient, error) {
	return r.queryIngredients(`SELECT `+ingredientCols+`
		FROM ingredients
		WHERE is_active = 1 AND LOWER(name) LIKE '%' || LOWER(?) || '%'
		ORDER BY name ASC`, text)
}

// AdjustStock suma delta al saldo de stock en un solo UPDATE atómico.
// Única primitiva de mutación de stock del sistema. No filtra por is_active:
// la reversión de una anulación apunta a la fila histórica aunque el
// ingrediente se haya dado de baja después de la venta.
func (r *IngredientRepo) AdjustStock(id int64, delta decimal.Decimal) (bool, error) {
	res, err := r.q.Exec(`
		UPDATE ingredients
		SET quantity_in_stock = quantity_in_stock + ?, updated_at = ?
		WHERE id = ?`,
		delta, time.Now().UTC(), id,
	)
	if err != nil {
		return false, fmt.Errorf("adjust stock: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
