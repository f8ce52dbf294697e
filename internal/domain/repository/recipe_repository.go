package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/puntoventa/internal/domain/entity"
)

// RecipeRepository define el puerto de persistencia para Recipe y sus líneas (DIP).
// El cascade de costos (calcular total con precios vigentes, reemplazar líneas)
// lo orquesta el caso de uso dentro de una transacción; aquí van las primitivas.
type RecipeRepository interface {
	GetAll() ([]*entity.Recipe, error)
	GetByID(id int64) (*entity.Recipe, error)
	Exists(id int64) (bool, error)
	Count() (int64, error)
	Create(r *entity.Recipe) error
	Update(id int64, patch entity.RecipePatch) (*entity.Recipe, error)
	Delete(id int64) (bool, error)
	Restore(id int64) (bool, error)

	// GetWithItems receta con sus líneas activas y el ingrediente de cada una.
	GetWithItems(id int64) (*entity.RecipeWithItems, error)
	// CreateItem inserta una línea de receta.
	CreateItem(item *entity.RecipeItem) error
	// ListItems líneas activas de una receta.
	ListItems(recipeID int64) ([]*entity.RecipeItem, error)
	// DeactivateItems borra en blando todas las líneas activas de la receta.
	DeactivateItems(recipeID int64) error
	// UpdateCost persiste los campos derivados de costo.
	UpdateCost(id int64, totalCost, costPerServing decimal.Decimal) error
}
