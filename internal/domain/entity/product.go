package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de producto.
const (
	CategoryBeverage = "beverage"
	CategoryFood     = "food"
	CategoryDessert  = "dessert"
	CategorySnack    = "snack"
	CategoryOther    = "other"
)

// ValidCategory indica si la categoría pertenece al catálogo soportado.
func ValidCategory(c string) bool {
	switch c {
	case CategoryBeverage, CategoryFood, CategoryDessert, CategorySnack, CategoryOther:
		return true
	}
	return false
}

// Product representa un producto vendible. Si TrackInventory es true y RecipeID
// no es nil, cada venta descuenta del stock los ingredientes de la receta.
type Product struct {
	ID             int64
	Name           string
	Category       string
	Price          decimal.Decimal // precio de venta
	RecipeID       *int64
	TrackInventory bool
	ImagePath      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Active         bool
}

// ProductPatch campos opcionales para actualización parcial (nil = no tocar).
type ProductPatch struct {
	Name           *string
	Category       *string
	Price          *decimal.Decimal
	RecipeID       *int64
	ClearRecipe    bool // true desvincula la receta (RecipeID -> NULL)
	TrackInventory *bool
	ImagePath      *string
}
