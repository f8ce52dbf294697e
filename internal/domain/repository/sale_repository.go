package repository

import (
	"time"

	"github.com/jhoicas/puntoventa/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para Sale y sus líneas (DIP).
// La creación atómica (venta + líneas + descuento de stock) y la anulación con
// reversión las orquesta el caso de uso dentro de una transacción.
type SaleRepository interface {
	GetAll() ([]*entity.Sale, error)
	GetByID(id int64) (*entity.Sale, error)
	Exists(id int64) (bool, error)
	Count() (int64, error)
	Create(s *entity.Sale) error
	// Update parchea notas y método de pago. Los montos son derivados del
	// checkout y no se editan después de cerrar la venta.
	Update(id int64, patch entity.SalePatch) (*entity.Sale, error)
	Delete(id int64) (bool, error)
	Restore(id int64) (bool, error)

	// CreateItem inserta una línea de venta.
	CreateItem(item *entity.SaleItem) error
	// ListItems líneas activas de una venta.
	ListItems(saleID int64) ([]*entity.SaleItem, error)
	// GetWithItems venta con sus líneas y el producto de cada una.
	GetWithItems(id int64) (*entity.SaleWithItems, error)
	// DeactivateItems borra en blando todas las líneas de la venta (anulación).
	DeactivateItems(saleID int64) error

	// GetByDateRange ventas activas con created_at dentro del rango [from, to).
	GetByDateRange(from, to time.Time) ([]*entity.Sale, error)
	// GetByPaymentMethod ventas activas por método de pago, más recientes primero.
	GetByPaymentMethod(method string) ([]*entity.Sale, error)
	// GetToday ventas activas del día calendario actual.
	GetToday() ([]*entity.Sale, error)
	// GetDailySummary total vendido, número de transacciones, ticket promedio y
	// descuento total de un día calendario.
	GetDailySummary(date time.Time) (*entity.DailySummary, error)
}
