package repository

import "github.com/jhoicas/puntoventa/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	GetAll() ([]*entity.Product, error)
	GetByID(id int64) (*entity.Product, error)
	Exists(id int64) (bool, error)
	Count() (int64, error)
	Create(p *entity.Product) error
	Update(id int64, patch entity.ProductPatch) (*entity.Product, error)
	Delete(id int64) (bool, error)
	Restore(id int64) (bool, error)

	// ListByCategory productos activos de una categoría, más recientes primero.
	ListByCategory(category string) ([]*entity.Product, error)
	// ListByRecipe productos activos vinculados a una receta.
	ListByRecipe(recipeID int64) ([]*entity.Product, error)
	// Search búsqueda por subcadena del nombre, sin distinguir mayúsculas.
	Search(text string) ([]*entity.Product, error)
}
