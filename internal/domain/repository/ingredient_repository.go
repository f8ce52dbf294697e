package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/puntoventa/internal/domain/entity"
)

// IngredientRepository define el puerto de persistencia para Ingredient (DIP).
// Las lecturas solo ven filas activas; Delete es borrado blando.
type IngredientRepository interface {
	GetAll() ([]*entity.Ingredient, error)
	GetByID(id int64) (*entity.Ingredient, error)
	Exists(id int64) (bool, error)
	Count() (int64, error)
	Create(ing *entity.Ingredient) error
	Update(id int64, patch entity.IngredientPatch) (*entity.Ingredient, error)
	Delete(id int64) (bool, error)
	Restore(id int64) (bool, error)

	// GetLowStock filas activas con stock <= umbral, ascendente por stock (lo más urgente primero).
	GetLowStock() ([]*entity.Ingredient, error)
	// GetExpiringSoon filas activas con fecha de vencimiento dentro de `days` días.
	GetExpiringSoon(days int) ([]*entity.Ingredient, error)
	// Search búsqueda por subcadena del nombre, sin distinguir mayúsculas.
	Search(text string) ([]*entity.Ingredient, error)
	// AdjustStock suma delta (positivo o negativo) a quantity_in_stock de forma atómica.
	// Es la única primitiva que muta el stock; todo flujo (entrada manual, venta,
	// reversión de anulación) pasa por aquí. Opera sobre la fila exista activa o
	// no (la reversión debe alcanzar ingredientes ya dados de baja); verificar
	// actividad es responsabilidad de quien llama. Devuelve si afectó alguna fila.
	AdjustStock(id int64, delta decimal.Decimal) (bool, error)
}
