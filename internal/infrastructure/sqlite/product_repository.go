package sqlite

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/puntoventa/internal/domain/entity"
	"github.com/jhoicas/puntoventa/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productCols = `id, name, category, price, recipe_id, track_inventory, image_path,
	created_at, updated_at, is_active`

// ProductRepo implementación del puerto ProductRepository sobre SQLite
// (usable con la conexión compartida o con una tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar conexión o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(s interface{ Scan(dest ...any) error }) (*entity.Product, error) {
	var p entity.Product
	var recipeID sql.NullInt64
	err := s.Scan(
		&p.ID, &p.Name, &p.Category, &p.Price, &recipeID, &p.TrackInventory,
		&p.ImagePath, &p.CreatedAt, &p.UpdatedAt, &p.Active,
	)
	if err != nil {
		return nil, err
	}
	if recipeID.Valid {
		v := recipeID.Int64
		p.RecipeID = &v
	}
	return &p, nil
}

func (r *ProductRepo) queryProducts(query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var out []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetAll productos activos, más recientes primero.
func (r *ProductRepo) GetAll() ([]*entity.Product, error) {
	return r.queryProducts(`SELECT ` + productCols + `
		FROM products WHERE is_active = 1 ORDER BY created_at DESC, id DESC`)
}

// GetByID obtiene un producto activo por ID; nil si no existe o está inactivo.
func (r *ProductRepo) GetByID(id int64) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(`SELECT `+productCols+`
		FROM products WHERE id = ? AND is_active = 1`, id))
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func (r *ProductRepo) Exists(id int64) (bool, error) {
	return rowExists(r.q, "products", id)
}

func (r *ProductRepo) Count() (int64, error) {
	return activeCount(r.q, "products")
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(p *entity.Product) error {
	now := time.Now().UTC()
	res, err := r.q.Exec(`
		INSERT INTO products (name, category, price, recipe_id, track_inventory, image_path,
			created_at, updated_at, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, 1)`,
		p.Name, p.Category, p.Price, p.RecipeID, p.TrackInventory, p.ImagePath, now, now,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	p.ID, err = res.LastInsertId()
	if err != nil {
		return err
	}
	p.CreatedAt, p.UpdatedAt, p.Active = now, now, true
	return nil
}

// Update parchea solo los campos provistos y refresca updated_at. Devuelve nil
// si la fila no existe o está inactiva; parche vacío = fila actual.
func (r *ProductRepo) Update(id int64, patch entity.ProductPatch) (*entity.Product, error) {
	var sets []string
	var args []any
	add := func(col string, v any) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}
	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Category != nil {
		add("category", *patch.Category)
	}
	if patch.Price != nil {
		add("price", *patch.Price)
	}
	if patch.ClearRecipe {
		sets = append(sets, "recipe_id = NULL")
	} else if patch.RecipeID != nil {
		add("recipe_id", *patch.RecipeID)
	}
	if patch.TrackInventory != nil {
		add("track_inventory", *patch.TrackInventory)
	}
	if patch.ImagePath != nil {
		add("image_path", *patch.ImagePath)
	}
	if len(sets) == 0 {
		return r.GetByID(id)
	}

	add("updated_at", time.Now().UTC())
	args = append(args, id)
	_, err := r.q.Exec(`UPDATE products SET `+strings.Join(sets, ", ")+`
		WHERE id = ? AND is_active = 1`, args...)
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return r.GetByID(id)
}

func (r *ProductRepo) Delete(id int64) (bool, error) {
	return setActive(r.q, "products", id, false)
}

func (r *ProductRepo) Restore(id int64) (bool, error) {
	return setActive(r.q, "products", id, true)
}

// ListByCategory productos activos de una categoría, más recientes primero.
func (r *ProductRepo) ListByCategory(category string) ([]*entity.Product, error) {
	return r.queryProducts(`SELECT `+productCols+`
		FROM products WHERE is_active = 1 AND category = ?
		ORDER BY created_at DESC, id DESC`, category)
}

// ListByRecipe productos activos vinculados a una receta.
func (r *ProductRepo) ListByRecipe(recipeID int64) ([]*entity.Product, error) {
	return r.queryProducts(`SELECT `+productCols+`
		FROM products WHERE is_active = 1 AND recipe_id = ?
		ORDER BY id ASC`, recipeID)
}

// Search subcadena del nombre sin distinguir mayúsculas.
func (r *ProductRepo) Search(text string) ([]*entity.Product, error) {
	return r.queryProducts(`SELECT `+productCols+`
		FROM products
		WHERE is_active = 1 AND LOWER(name) LIKE '%' || LOWER(?) || '%'
		ORDER BY name ASC`, text)
}
