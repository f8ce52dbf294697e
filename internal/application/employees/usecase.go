package employees

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/puntoventa/internal/domain"
	"github.com/jhoicas/puntoventa/internal/domain/entity"
	"github.com/jhoicas/puntoventa/internal/domain/repository"
)

// pinMinLen largo mínimo del PIN de acceso.
const pinMinLen = 4

// UseCase administra empleados y su PIN de acceso. El PIN nunca se persiste en
// claro: se guarda el hash bcrypt y la verificación compara contra el hash.
type UseCase struct {
	employees repository.EmployeeRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(employees repository.EmployeeRepository) *UseCase {
	return &UseCase{employees: employees}
}

// NewEmployeeInput entrada para registrar un empleado.
type NewEmployeeInput struct {
	Name       string
	Role       string
	WageType   string
	WageAmount decimal.Decimal
	PIN        string
}

// CreateEmployee valida, hashea el PIN y persiste el empleado.
func (uc *UseCase) CreateEmployee(input NewEmployeeInput) (*entity.Employee, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: nombre requerido", domain.ErrInvalidInput)
	}
	if !entity.ValidWageType(input.WageType) {
		return nil, fmt.Errorf("%w: tipo de salario %q", domain.ErrInvalidInput, input.WageType)
	}
	if input.WageAmount.IsNegative() {
		return nil, fmt.Errorf("%w: salario negativo", domain.ErrInvalidInput)
	}
	hash, err := hashPIN(input.PIN)
	if err != nil {
		return nil, err
	}

	emp := &entity.Employee{
		Name:       input.Name,
		Role:       input.Role,
		WageType:   input.WageType,
		WageAmount: input.WageAmount,
		PINHash:    hash,
	}
	if err := uc.employees.Create(emp); err != nil {
		return nil, err
	}
	return emp, nil
}

// SetPIN reemplaza el PIN del empleado. Devuelve ErrNotFound si no existe.
func (uc *UseCase) SetPIN(id int64, pin string) error {
	hash, err := hashPIN(pin)
	if err != nil {
		return err
	}
	ok, err := uc.employees.SetPINHash(id, hash)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: empleado %d", domain.ErrNotFound, id)
	}
	return nil
}

// VerifyPIN compara el PIN contra el hash guardado. Devuelve true si coincide;
// un PIN incorrecto NO es error (solo false), los errores son de infraestructura.
func (uc *UseCase) VerifyPIN(id int64, pin string) (bool, error) {
	emp, err := uc.employees.GetByID(id)
	if err != nil {
		return false, err
	}
	if emp == nil {
		return false, fmt.Errorf("%w: empleado %d", domain.ErrNotFound, id)
	}
	if emp.PINHash == "" {
		return false, nil
	}
	err = bcrypt.CompareHashAndPassword([]byte(emp.PINHash), []byte(pin))
	if err == bcrypt.ErrMismatchedHashAndPassword {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("comparar pin: %w", err)
	}
	return true, nil
}

func hashPIN(pin string) (string, error) {
	if len(pin) < pinMinLen {
		return "", fmt.Errorf("%w: pin de al menos %d dígitos", domain.ErrInvalidInput, pinMinLen)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashear pin: %w", err)
	}
	return string(hash), nil
}
