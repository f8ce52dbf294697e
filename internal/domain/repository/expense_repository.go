package repository

import (
	"time"

	"github.com/jhoicas/puntoventa/internal/domain/entity"
)

// ExpenseRepository define el puerto de persistencia para Expense (DIP).
type ExpenseRepository interface {
	GetAll() ([]*entity.Expense, error)
	GetByID(id int64) (*entity.Expense, error)
	Exists(id int64) (bool, error)
	Count() (int64, error)
	Create(e *entity.Expense) error
	Update(id int64, patch entity.ExpensePatch) (*entity.Expense, error)
	Delete(id int64) (bool, error)
	Restore(id int64) (bool, error)

	// ListByDateRange gastos activos con fecha dentro del rango [from, to).
	ListByDateRange(from, to time.Time) ([]*entity.Expense, error)
	// ListRecurring gastos activos marcados como recurrentes.
	ListRecurring() ([]*entity.Expense, error)
}
