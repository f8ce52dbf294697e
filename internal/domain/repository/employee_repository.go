package repository

import "github.com/jhoicas/puntoventa/internal/domain/entity"

// EmployeeRepository define el puerto de persistencia para Employee (DIP).
// El PIN se guarda como hash bcrypt; la verificación vive en el caso de uso.
type EmployeeRepository interface {
	GetAll() ([]*entity.Employee, error)
	GetByID(id int64) (*entity.Employee, error)
	Exists(id int64) (bool, error)
	Count() (int64, error)
	Create(e *entity.Employee) error
	Update(id int64, patch entity.EmployeePatch) (*entity.Employee, error)
	Delete(id int64) (bool, error)
	Restore(id int64) (bool, error)

	// SetPINHash guarda el hash bcrypt del PIN del empleado.
	SetPINHash(id int64, hash string) (bool, error)
}
