package employees_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/puntoventa/internal/application/employees"
	"github.com/jhoicas/puntoventa/internal/domain"
	"github.com/jhoicas/puntoventa/internal/domain/entity"
	"github.com/jhoicas/puntoventa/internal/domain/repository"
	"github.com/jhoicas/puntoventa/internal/infrastructure/sqlite"
)

func setup(t *testing.T) (*employees.UseCase, *repository.Repos) {
	t.Helper()
	db, err := sqlite.Open(":memory:", sqlite.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Initialize())

	repos := sqlite.NewRepos(db.SQL())
	return employees.NewUseCase(repos.Employees), repos
}

func validInput() employees.NewEmployeeInput {
	return employees.NewEmployeeInput{
		Name:       "Andrea Gómez",
		Role:       "cajera",
		WageType:   entity.WageDaily,
		WageAmount: decimal.NewFromInt(35),
		PIN:        "1357",
	}
}

func TestCreateEmployee_GuardaHashNoPIN(t *testing.T) {
	uc, repos := setup(t)

	emp, err := uc.CreateEmployee(validInput())
	require.NoError(t, err)
	require.NotZero(t, emp.ID)

	got, err := repos.Employees.GetByID(emp.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.NotEmpty(t, got.PINHash)
	assert.NotEqual(t, "1357", got.PINHash, "el PIN jamás se guarda en claro")
	assert.Contains(t, got.PINHash, "$2a$", "hash bcrypt")
}

func TestCreateEmployee_Validacion(t *testing.T) {
	uc, _ := setup(t)

	in := validInput()
	in.Name = ""
	_, err := uc.CreateEmployee(in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "nombre requerido")

	in = validInput()
	in.WageType = "semanal"
	_, err = uc.CreateEmployee(in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "tipo de salario fuera del catálogo")

	in = validInput()
	in.PIN = "12"
	_, err = uc.CreateEmployee(in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "PIN demasiado corto")
}

func TestVerifyPIN(t *testing.T) {
	uc, _ := setup(t)

	emp, err := uc.CreateEmployee(validInput())
	require.NoError(t, err)

	ok, err := uc.VerifyPIN(emp.ID, "1357")
	require.NoError(t, err)
	assert.True(t, ok, "el PIN correcto verifica")

	ok, err = uc.VerifyPIN(emp.ID, "0000")
	require.NoError(t, err, "un PIN incorrecto no es un error de infraestructura")
	assert.False(t, ok)

	_, err = uc.VerifyPIN(999, "1357")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSetPIN_Reemplaza(t *testing.T) {
	uc, _ := setup(t)

	emp, err := uc.CreateEmployee(validInput())
	require.NoError(t, err)

	require.NoError(t, uc.SetPIN(emp.ID, "9900"))

	ok, err := uc.VerifyPIN(emp.ID, "9900")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = uc.VerifyPIN(emp.ID, "1357")
	require.NoError(t, err)
	assert.False(t, ok, "el PIN anterior deja de servir")

	err = uc.SetPIN(999, "4321")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDailyWage_Conversiones(t *testing.T) {
	daily := entity.Employee{WageType: entity.WageDaily, WageAmount: decimal.NewFromInt(40)}
	hourly := entity.Employee{WageType: entity.WageHourly, WageAmount: decimal.NewFromInt(5)}
	monthly := entity.Employee{WageType: entity.WageMonthly, WageAmount: decimal.NewFromInt(900)}

	assert.True(t, daily.DailyWage().Equal(decimal.NewFromInt(40)))
	assert.True(t, hourly.DailyWage().Equal(decimal.NewFromInt(40)), "5 * 8 horas")
	assert.True(t, monthly.DailyWage().Equal(decimal.NewFromInt(30)), "900 / 30 días")
}
