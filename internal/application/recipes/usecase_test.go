package recipes_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/puntoventa/internal/application/recipes"
	"github.com/jhoicas/puntoventa/internal/domain"
	"github.com/jhoicas/puntoventa/internal/domain/entity"
	"github.com/jhoicas/puntoventa/internal/domain/repository"
	"github.com/jhoicas/puntoventa/internal/infrastructure/sqlite"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func setup(t *testing.T) (*recipes.UseCase, *repository.Repos) {
	t.Helper()
	db, err := sqlite.Open(":memory:", sqlite.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Initialize())

	repos := sqlite.NewRepos(db.SQL())
	return recipes.NewUseCase(sqlite.NewTxRunner(db), repos.Recipes), repos
}

func addIngredient(t *testing.T, r *repository.Repos, name, cost string) *entity.Ingredient {
	t.Helper()
	ing := &entity.Ingredient{Name: name, CostPerUnit: dec(t, cost), Unit: entity.UnitKg}
	require.NoError(t, r.Ingredients.Create(ing))
	return ing
}

func TestCreateRecipe_CalculaCostos(t *testing.T) {
	uc, repos := setup(t)
	harina := addIngredient(t, repos, "Harina", "2.00")

	// 0.5 kg de harina a 2.00/kg, 4 porciones: total 1.00, por porción 0.25.
	rec, err := uc.CreateRecipe(context.Background(), recipes.NewRecipeInput{
		Name:     "Pan campesino",
		Servings: 4,
		Items: []entity.NewRecipeItem{
			{IngredientID: harina.ID, Quantity: dec(t, "0.5"), Unit: entity.UnitKg},
		},
	})
	require.NoError(t, err)

	assert.True(t, rec.TotalCost.Equal(dec(t, "1.00")), "costo total: %s", rec.TotalCost)
	assert.True(t, rec.CostPerServing.Equal(dec(t, "0.25")), "por porción: %s", rec.CostPerServing)

	// El costo quedó persistido, no solo en memoria.
	got, err := repos.Recipes.GetByID(rec.ID)
	require.NoError(t, err)
	assert.True(t, got.TotalCost.Equal(dec(t, "1.00")))

	items, err := repos.Recipes.ListItems(rec.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestCreateRecipe_Validacion(t *testing.T) {
	uc, repos := setup(t)
	harina := addIngredient(t, repos, "Harina", "2.00")
	ctx := context.Background()

	_, err := uc.CreateRecipe(ctx, recipes.NewRecipeInput{Name: "Sin porciones", Servings: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateRecipe(ctx, recipes.NewRecipeInput{
		Name: "Unidad rara", Servings: 1,
		Items: []entity.NewRecipeItem{{IngredientID: harina.ID, Quantity: dec(t, "1"), Unit: "puñado"}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateRecipe(ctx, recipes.NewRecipeInput{
		Name: "Fantasma", Servings: 1,
		Items: []entity.NewRecipeItem{{IngredientID: 999, Quantity: dec(t, "1"), Unit: entity.UnitKg}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "ingrediente inexistente")
}

func TestUpdateRecipe_SoloEscalares(t *testing.T) {
	uc, repos := setup(t)
	harina := addIngredient(t, repos, "Harina", "2.00")

	rec, err := uc.CreateRecipe(context.Background(), recipes.NewRecipeInput{
		Name: "Pan", Servings: 4,
		Items: []entity.NewRecipeItem{{IngredientID: harina.ID, Quantity: dec(t, "0.5"), Unit: entity.UnitKg}},
	})
	require.NoError(t, err)

	name := "Pan artesanal"
	got, err := uc.UpdateRecipe(context.Background(), rec.ID, entity.RecipePatch{Name: &name}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Pan artesanal", got.Name)
	assert.True(t, got.TotalCost.Equal(dec(t, "1.00")), "sin items nuevos el costo no se recalcula")

	items, err := repos.Recipes.ListItems(rec.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1, "las líneas quedan intactas")
}

func TestUpdateRecipe_ReemplazaItemsYRecalcula(t *testing.T) {
	uc, repos := setup(t)
	harina := addIngredient(t, repos, "Harina", "2.00")
	mantequilla := addIngredient(t, repos, "Mantequilla", "8.00")

	rec, err := uc.CreateRecipe(context.Background(), recipes.NewRecipeInput{
		Name: "Pan", Servings: 4,
		Items: []entity.NewRecipeItem{{IngredientID: harina.ID, Quantity: dec(t, "0.5"), Unit: entity.UnitKg}},
	})
	require.NoError(t, err)

	// Nuevo set de líneas: 0.5 harina + 0.25 mantequilla = 1.00 + 2.00 = 3.00.
	got, err := uc.UpdateRecipe(context.Background(), rec.ID, entity.RecipePatch{}, []entity.NewRecipeItem{
		{IngredientID: harina.ID, Quantity: dec(t, "0.5"), Unit: entity.UnitKg},
		{IngredientID: mantequilla.ID, Quantity: dec(t, "0.25"), Unit: entity.UnitKg},
	})
	require.NoError(t, err)
	assert.True(t, got.TotalCost.Equal(dec(t, "3.00")), "costo recalculado: %s", got.TotalCost)
	assert.True(t, got.CostPerServing.Equal(dec(t, "0.75")))

	items, err := repos.Recipes.ListItems(rec.ID)
	require.NoError(t, err)
	assert.Len(t, items, 2, "el set anterior se reemplaza, no se acumula")
}

func TestUpdateRecipe_Inexistente(t *testing.T) {
	uc, _ := setup(t)

	got, err := uc.UpdateRecipe(context.Background(), 999, entity.RecipePatch{}, nil)
	require.NoError(t, err)
	assert.Nil(t, got, "una receta inexistente devuelve nil, no error")
}

func TestRecalculateCost_TrasCambioDePrecio(t *testing.T) {
	uc, repos := setup(t)
	harina := addIngredient(t, repos, "Harina", "2.00")

	rec, err := uc.CreateRecipe(context.Background(), recipes.NewRecipeInput{
		Name: "Pan", Servings: 4,
		Items: []entity.NewRecipeItem{{IngredientID: harina.ID, Quantity: dec(t, "0.5"), Unit: entity.UnitKg}},
	})
	require.NoError(t, err)

	// Sube el precio de la harina: el snapshot de la receta NO cambia solo.
	newCost := dec(t, "3.00")
	_, err = repos.Ingredients.Update(harina.ID, entity.IngredientPatch{CostPerUnit: &newCost})
	require.NoError(t, err)

	got, err := repos.Recipes.GetByID(rec.ID)
	require.NoError(t, err)
	assert.True(t, got.TotalCost.Equal(dec(t, "1.00")), "el costo es un snapshot")

	// El recálculo explícito sí toma el precio nuevo: 0.5 * 3.00 = 1.50.
	recalc, err := uc.RecalculateCost(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.True(t, recalc.TotalCost.Equal(dec(t, "1.50")), "recalculado: %s", recalc.TotalCost)
	assert.True(t, recalc.CostPerServing.Equal(dec(t, "0.375")))
}

func TestRecalculateCost_IgnoraIngredientesBorrados(t *testing.T) {
	uc, repos := setup(t)
	harina := addIngredient(t, repos, "Harina", "2.00")
	azucar := addIngredient(t, repos, "Azúcar", "4.00")

	rec, err := uc.CreateRecipe(context.Background(), recipes.NewRecipeInput{
		Name: "Torta", Servings: 1,
		Items: []entity.NewRecipeItem{
			{IngredientID: harina.ID, Quantity: dec(t, "1"), Unit: entity.UnitKg},
			{IngredientID: azucar.ID, Quantity: dec(t, "1"), Unit: entity.UnitKg},
		},
	})
	require.NoError(t, err)
	require.True(t, rec.TotalCost.Equal(dec(t, "6.00")))

	_, err = repos.Ingredients.Delete(azucar.ID)
	require.NoError(t, err)

	recalc, err := uc.RecalculateCost(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.True(t, recalc.TotalCost.Equal(dec(t, "2.00")),
		"un ingrediente borrado en blando no aporta costo: %s", recalc.TotalCost)
}

func TestGetWithItems_ResuelveIngredientes(t *testing.T) {
	uc, repos := setup(t)
	harina := addIngredient(t, repos, "Harina", "2.00")

	rec, err := uc.CreateRecipe(context.Background(), recipes.NewRecipeInput{
		Name: "Pan", Servings: 2,
		Items: []entity.NewRecipeItem{{IngredientID: harina.ID, Quantity: dec(t, "0.5"), Unit: entity.UnitKg}},
	})
	require.NoError(t, err)

	got, err := uc.GetWithItems(rec.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Harina", got.Items[0].IngredientName)
}
