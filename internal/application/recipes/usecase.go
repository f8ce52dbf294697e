package recipes

import (
	"context"
	"fmt"

	"github.com/jhoicas/puntoventa/internal/domain"
	"github.com/jhoicas/puntoventa/internal/domain/costing"
	"github.com/jhoicas/puntoventa/internal/domain/entity"
	"github.com/jhoicas/puntoventa/internal/domain/repository"
)

// UseCase orquesta el cascade de costos de recetas: el costo total se calcula
// con el precio VIGENTE de cada ingrediente al momento de escribir y queda
// como snapshot (no se recalcula solo; ver RecalculateCost).
type UseCase struct {
	txRunner repository.TxRunner
	recipes  repository.RecipeRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner repository.TxRunner, recipes repository.RecipeRepository) *UseCase {
	return &UseCase{txRunner: txRunner, recipes: recipes}
}

// NewRecipeInput entrada para crear una receta con sus líneas.
type NewRecipeInput struct {
	Name        string
	Description string
	Servings    int
	Items       []entity.NewRecipeItem
}

// costLines resuelve cada línea contra el ingrediente activo y arma las
// entradas del cálculo de costo. Ingrediente inexistente = ErrNotFound.
func costLines(r *repository.Repos, items []entity.NewRecipeItem) ([]costing.RecipeLine, error) {
	lines := make([]costing.RecipeLine, 0, len(items))
	for _, it := range items {
		ing, err := r.Ingredients.GetByID(it.IngredientID)
		if err != nil {
			return nil, err
		}
		if ing == nil {
			return nil, fmt.Errorf("%w: ingrediente %d", domain.ErrNotFound, it.IngredientID)
		}
		lines = append(lines, costing.RecipeLine{Quantity: it.Quantity, CostPerUnit: ing.CostPerUnit})
	}
	return lines, nil
}

// CreateRecipe crea la receta y sus líneas en una sola transacción, calculando
// total_cost y cost_per_serving con los precios vigentes de los ingredientes.
func (uc *UseCase) CreateRecipe(ctx context.Context, input NewRecipeInput) (*entity.Recipe, error) {
	if input.Servings <= 0 {
		return nil, fmt.Errorf("%w: servings debe ser > 0", domain.ErrInvalidInput)
	}
	for _, it := range input.Items {
		if !it.Quantity.IsPositive() || !entity.ValidUnit(it.Unit) {
			return nil, domain.ErrInvalidInput
		}
	}

	var rec *entity.Recipe
	err := uc.txRunner.Run(ctx, func(r *repository.Repos) error {
		lines, err := costLines(r, input.Items)
		if err != nil {
			return err
		}
		total, perServing := costing.RecipeCost(lines, input.Servings)

		rec = &entity.Recipe{
			Name:           input.Name,
			Description:    input.Description,
			Servings:       input.Servings,
			TotalCost:      total,
			CostPerServing: perServing,
		}
		if err := r.Recipes.Create(rec); err != nil {
			return err
		}
		for _, it := range input.Items {
			item := &entity.RecipeItem{
				RecipeID:     rec.ID,
				IngredientID: it.IngredientID,
				Quantity:     it.Quantity,
				Unit:         it.Unit,
			}
			if err := r.Recipes.CreateItem(item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// UpdateRecipe parchea los escalares y, si items no es nil, reemplaza el set
// completo de líneas (borrado blando del set anterior + inserción del nuevo) y
// recalcula los costos con el servings vigente tras el parche. Todo en una
// transacción. Devuelve nil si la receta no existe o está inactiva.
func (uc *UseCase) UpdateRecipe(ctx context.Context, id int64, patch entity.RecipePatch, items []entity.NewRecipeItem) (*entity.Recipe, error) {
	var rec *entity.Recipe
	err := uc.txRunner.Run(ctx, func(r *repository.Repos) error {
		var err error
		rec, err = r.Recipes.Update(id, patch)
		if err != nil || rec == nil {
			return err
		}
		if items == nil {
			return nil
		}

		if err := r.Recipes.DeactivateItems(id); err != nil {
			return err
		}
		for _, it := range items {
			item := &entity.RecipeItem{
				RecipeID:     id,
				IngredientID: it.IngredientID,
				Quantity:     it.Quantity,
				Unit:         it.Unit,
			}
			if err := r.Recipes.CreateItem(item); err != nil {
				return err
			}
		}

		lines, err := costLines(r, items)
		if err != nil {
			return err
		}
		total, perServing := costing.RecipeCost(lines, rec.Servings)
		if err := r.Recipes.UpdateCost(id, total, perServing); err != nil {
			return err
		}
		rec.TotalCost, rec.CostPerServing = total, perServing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// RecalculateCost re-deriva y persiste los costos desde los precios ACTUALES
// de los ingredientes, sin tocar las líneas. Es el remedio explícito cuando un
// ingrediente cambió de precio. Devuelve nil si la receta no existe.
func (uc *UseCase) RecalculateCost(ctx context.Context, id int64) (*entity.Recipe, error) {
	var rec *entity.Recipe
	err := uc.txRunner.Run(ctx, func(r *repository.Repos) error {
		var err error
		rec, err = r.Recipes.GetByID(id)
		if err != nil || rec == nil {
			return err
		}

		items, err := r.Recipes.ListItems(id)
		if err != nil {
			return err
		}
		lines := make([]costing.RecipeLine, 0, len(items))
		for _, it := range items {
			ing, err := r.Ingredients.GetByID(it.IngredientID)
			if err != nil {
				return err
			}
			if ing == nil {
				continue // ingrediente borrado en blando: no aporta costo
			}
			lines = append(lines, costing.RecipeLine{Quantity: it.Quantity, CostPerUnit: ing.CostPerUnit})
		}

		total, perServing := costing.RecipeCost(lines, rec.Servings)
		if err := r.Recipes.UpdateCost(id, total, perServing); err != nil {
			return err
		}
		rec.TotalCost, rec.CostPerServing = total, perServing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// GetWithItems lectura de la receta con líneas resueltas (pasa al repositorio).
func (uc *UseCase) GetWithItems(id int64) (*entity.RecipeWithItems, error) {
	return uc.recipes.GetWithItems(id)
}
