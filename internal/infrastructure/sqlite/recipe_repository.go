package sqlite

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/puntoventa/internal/domain/entity"
	"github.com/jhoicas/puntoventa/internal/domain/repository"
)

var _ repository.RecipeRepository = (*RecipeRepo)(nil)

const recipeCols = `id, name, description, servings, total_cost, cost_per_serving,
	created_at, updated_at, is_active`

// RecipeRepo implementación del puerto RecipeRepository sobre SQLite
// (usable con la conexión compartida o con una tx).
type RecipeRepo struct {
	q Querier
}

// NewRecipeRepository construye el adaptador. Pasar conexión o tx (Querier).
func NewRecipeRepository(q Querier) *RecipeRepo {
	return &RecipeRepo{q: q}
}

func scanRecipe(s interface{ Scan(dest ...any) error }) (*entity.Recipe, error) {
	var rec entity.Recipe
	err := s.Scan(
		&rec.ID, &rec.Name, &rec.Description, &rec.Servings,
		&rec.TotalCost, &rec.CostPerServing,
		&rec.CreatedAt, &rec.UpdatedAt, &rec.Active,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// GetAll recetas activas, más recientes primero.
func (r *RecipeRepo) GetAll() ([]*entity.Recipe, error) {
	rows, err := r.q.Query(`SELECT ` + recipeCols + `
		FROM recipes WHERE is_active = 1 ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query recipes: %w", err)
	}
	defer rows.Close()

	var out []*entity.Recipe
	for rows.Next() {
		rec, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// GetByID obtiene una receta activa por ID; nil si no existe o está inactiva.
func (r *RecipeRepo) GetByID(id int64) (*entity.Recipe, error) {
	rec, err := scanRecipe(r.q.QueryRow(`SELECT `+recipeCols+`
		FROM recipes WHERE id = ? AND is_active = 1`, id))
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	return rec, nil
}

func (r *RecipeRepo) Exists(id int64) (bool, error) {
	return rowExists(r.q, "recipes", id)
}

func (r *RecipeRepo) Count() (int64, error) {
	return activeCount(r.q, "recipes")
}

// Create persiste la fila de la receta (las líneas van aparte vía CreateItem).
func (r *RecipeRepo) Create(rec *entity.Recipe) error {
	now := time.Now().UTC()
	res, err := r.q.Exec(`
		INSERT INTO recipes (name, description, servings, total_cost, cost_per_serving,
			created_at, updated_at, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?, 1)`,
		rec.Name, rec.Description, rec.Servings, rec.TotalCost, rec.CostPerServing, now, now,
	)
	if err != nil {
		return fmt.Errorf("insert recipe: %w", err)
	}
	rec.ID, err = res.LastInsertId()
	if err != nil {
		return err
	}
	rec.CreatedAt, rec.UpdatedAt, rec.Active = now, now, true
	return nil
}

// Update parchea solo los campos escalares provistos y refresca updated_at.
// Devuelve nil si la fila no existe o está inactiva; parche vacío = fila actual.
func (r *RecipeRepo) Update(id int64, patch entity.RecipePatch) (*entity.Recipe, error) {
	var sets []string
	var args []any
	if patch.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *patch.Name)
	}
	if patch.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *patch.Description)
	}
	if patch.Servings != nil {
		sets = append(sets, "servings = ?")
		args = append(args, *patch.Servings)
	}
	if len(sets) == 0 {
		return r.GetByID(id)
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now().UTC(), id)
	_, err := r.q.Exec(`UPDATE recipes SET `+strings.Join(sets, ", ")+`
		WHERE id = ? AND is_active = 1`, args...)
	if err != nil {
		return nil, fmt.Errorf("update recipe: %w", err)
	}
	return r.GetByID(id)
}

func (r *RecipeRepo) Delete(id int64) (bool, error) {
	return setActive(r.q, "recipes", id, false)
}

func (r *RecipeRepo) Restore(id int64) (bool, error) {
	return setActive(r.q, "recipes", id, true)
}

// GetWithItems receta con sus líneas activas y el ingrediente de cada una.
func (r *RecipeRepo) GetWithItems(id int64) (*entity.RecipeWithItems, error) {
	rec, err := r.GetByID(id)
	if err != nil || rec == nil {
		return nil, err
	}

	rows, err := r.q.Query(`
		SELECT ri.id, ri.recipe_id, ri.ingredient_id, ri.quantity, ri.unit,
		       ri.created_at, ri.updated_at, ri.is_active,
		       i.name, i.unit, i.cost_per_unit
		FROM recipe_items ri
		JOIN ingredients i ON i.id = ri.ingredient_id
		WHERE ri.recipe_id = ? AND ri.is_active = 1
		ORDER BY ri.id ASC`, id)
	if err != nil {
		return nil, fmt.Errorf("query recipe items: %w", err)
	}
	defer rows.Close()

	out := &entity.RecipeWithItems{Recipe: *rec}
	for rows.Next() {
		var d entity.RecipeItemDetail
		if err := rows.Scan(
			&d.ID, &d.RecipeID, &d.IngredientID, &d.Quantity, &d.Unit,
			&d.CreatedAt, &d.UpdatedAt, &d.Active,
			&d.IngredientName, &d.IngredientUnit, &d.CostPerUnit,
		); err != nil {
			return nil, fmt.Errorf("scan recipe item: %w", err)
		}
		out.Items = append(out.Items, d)
	}
	return out, rows.Err()
}

// CreateItem inserta una línea de receta.
func (r *RecipeRepo) CreateItem(item *entity.RecipeItem) error {
	now := time.Now().UTC()
	res, err := r.q.Exec(`
		INSERT INTO recipe_items (recipe_id, ingredient_id, quantity, unit,
			created_at, updated_at, is_active)
		VALUES (?, ?, ?, ?, ?, ?, 1)`,
		item.RecipeID, item.IngredientID, item.Quantity, item.Unit, now, now,
	)
	if err != nil {
		return fmt.Errorf("insert recipe item: %w", err)
	}
	item.ID, err = res.LastInsertId()
	if err != nil {
		return err
	}
	item.CreatedAt, item.UpdatedAt, item.Active = now, now, true
	return nil
}

// ListItems líneas activas de la receta.
func (r *RecipeRepo) ListItems(recipeID int64) ([]*entity.RecipeItem, error) {
	rows, err := r.q.Query(`
		SELECT id, recipe_id, ingredient_id, quantity, unit, created_at, updated_at, is_active
		FROM recipe_items WHERE recipe_id = ? AND is_active = 1 ORDER BY id ASC`, recipeID)
	if err != nil {
		return nil, fmt.Errorf("query recipe items: %w", err)
	}
	defer rows.Close()

	var out []*entity.RecipeItem
	for rows.Next() {
		var it entity.RecipeItem
		if err := rows.Scan(&it.ID, &it.RecipeID, &it.IngredientID, &it.Quantity,
			&it.Unit, &it.CreatedAt, &it.UpdatedAt, &it.Active); err != nil {
			return nil, fmt.Errorf("scan recipe item: %w", err)
		}
		out = append(out, &it)
	}
	return out, rows.Err()
}

// DeactivateItems borra en blando todas las líneas activas de la receta
// (el reemplazo del set de líneas nunca borra físicamente).
func (r *RecipeRepo) DeactivateItems(recipeID int64) error {
	_, err := r.q.Exec(`
		UPDATE recipe_items SET is_active = 0, updated_at = ?
		WHERE recipe_id = ? AND is_active = 1`,
		time.Now().UTC(), recipeID,
	)
	if err != nil {
		return fmt.Errorf("deactivate recipe items: %w", err)
	}
	return nil
}

// UpdateCost persiste los campos derivados de costo de la receta.
func (r *RecipeRepo) UpdateCost(id int64, totalCost, costPerServing decimal.Decimal) error {
	_, err := r.q.Exec(`
		UPDATE recipes SET total_cost = ?, cost_per_serving = ?, updated_at = ?
		WHERE id = ? AND is_active = 1`,
		totalCost, costPerServing, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("update recipe cost: %w", err)
	}
	return nil
}
