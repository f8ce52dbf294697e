package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recipe representa una receta. TotalCost y CostPerServing son valores derivados:
// se calculan al crear/actualizar con el costo vigente de cada ingrediente y NO se
// recalculan solos cuando un ingrediente cambia de precio (usar RecalculateCost).
type Recipe struct {
	ID             int64
	Name           string
	Description    string
	Servings       int
	TotalCost      decimal.Decimal
	CostPerServing decimal.Decimal // TotalCost / Servings
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Active         bool
}

// RecipeItem una línea de receta: cantidad de un ingrediente.
// Borrable de forma blanda independiente de la receta padre.
type RecipeItem struct {
	ID           int64
	RecipeID     int64
	IngredientID int64
	Quantity     decimal.Decimal
	Unit         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Active       bool
}

// RecipeItemDetail línea de receta con los datos del ingrediente (para mostrar).
type RecipeItemDetail struct {
	RecipeItem
	IngredientName string
	IngredientUnit string
	CostPerUnit    decimal.Decimal
}

// RecipeWithItems receta con sus líneas activas resueltas.
type RecipeWithItems struct {
	Recipe
	Items []RecipeItemDetail
}

// RecipePatch campos opcionales para actualización parcial (nil = no tocar).
// Items no va aquí: el reemplazo del set de líneas es una operación del caso de uso.
type RecipePatch struct {
	Name        *string
	Description *string
	Servings    *int
}

// NewRecipeItem entrada para crear una línea de receta.
type NewRecipeItem struct {
	IngredientID int64
	Quantity     decimal.Decimal
	Unit         string
}
