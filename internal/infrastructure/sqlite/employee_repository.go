package sqlite

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/puntoventa/internal/domain/entity"
	"github.com/jhoicas/puntoventa/internal/domain/repository"
)

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

const employeeCols = `id, name, role, wage_type, wage_amount, pin_hash,
	created_at, updated_at, is_active`

// EmployeeRepo implementación del puerto EmployeeRepository sobre SQLite.
type EmployeeRepo struct {
	q Querier
}

// NewEmployeeRepository construye el adaptador. Pasar conexión o tx (Querier).
func NewEmployeeRepository(q Querier) *EmployeeRepo {
	return &EmployeeRepo{q: q}
}

func scanEmployee(s interface{ Scan(dest ...any) error }) (*entity.Employee, error) {
	var e entity.Employee
	err := s.Scan(
		&e.ID, &e.Name, &e.Role, &e.WageType, &e.WageAmount, &e.PINHash,
		&e.CreatedAt, &e.UpdatedAt, &e.Active,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// GetAll empleados activos, más recientes primero.
func (r *EmployeeRepo) GetAll() ([]*entity.Employee, error) {
	rows, err := r.q.Query(`SELECT ` + employeeCols + `
		FROM employees WHERE is_active = 1 ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query employees: %w", err)
	}
	defer rows.Close()

	var out []*entity.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// GetByID obtiene un empleado activo por ID; nil si no existe o está inactivo.
func (r *EmployeeRepo) GetByID(id int64) (*entity.Employee, error) {
	e, err := scanEmployee(r.q.QueryRow(`SELECT `+employeeCols+`
		FROM employees WHERE id = ? AND is_active = 1`, id))
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return e, nil
}

func (r *EmployeeRepo) Exists(id int64) (bool, error) {
	return rowExists(r.q, "employees", id)
}

func (r *EmployeeRepo) Count() (int64, error) {
	return activeCount(r.q, "employees")
}

// Create persiste un nuevo empleado.
func (r *EmployeeRepo) Create(e *entity.Employee) error {
	now := time.Now().UTC()
	res, err := r.q.Exec(`
		INSERT INTO employees (name, role, wage_type, wage_amount, pin_hash,
			created_at, updated_at, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?, 1)`,
		e.Name, e.Role, e.WageType, e.WageAmount, e.PINHash, now, now,
	)
	if err != nil {
		return fmt.Errorf("insert employee: %w", err)
	}
	e.ID, err = res.LastInsertId()
	if err != nil {
		return err
	}
	e.CreatedAt, e.UpdatedAt, e.Active = now, now, true
	return nil
}

// Update parchea solo los campos provistos y refresca updated_at. Devuelve nil
// si la fila no existe o está inactiva; parche vacío = fila actual.
func (r *EmployeeRepo) Update(id int64, patch entity.EmployeePatch) (*entity.Employee, error) {
	var sets []string
	var args []any
	add := func(col string, v any) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}
	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Role != nil {
		add("role", *patch.Role)
	}
	if patch.WageType != nil {
		add("wage_type", *patch.WageType)
	}
	if patch.WageAmount != nil {
		add("wage_amount", *patch.WageAmount)
	}
	if len(sets) == 0 {
		return r.GetByID(id)
	}

	add("updated_at", time.Now().UTC())
	args = append(args, id)
	_, err := r.q.Exec(`UPDATE employees SET `+strings.Join(sets, ", ")+`
		WHERE id = ? AND is_active = 1`, args...)
	if err != nil {
		return nil, fmt.Errorf("update employee: %w", err)
	}
	return r.GetByID(id)
}

func (r *EmployeeRepo) Delete(id int64) (bool, error) {
	return setActive(r.q, "employees", id, false)
}

func (r *EmployeeRepo) Restore(id int64) (bool, error) {
	return setActive(r.q, "employees", id, true)
}

// SetPINHash guarda el hash bcrypt del PIN; devuelve si afectó alguna fila.
func (r *EmployeeRepo) SetPINHash(id int64, hash string) (bool, error) {
	res, err := r.q.Exec(`
		UPDATE employees SET pin_hash = ?, updated_at = ?
		WHERE id = ? AND is_active = 1`,
		hash, time.Now().UTC(), id,
	)
	if err != nil {
		return false, fmt.Errorf("set pin hash: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
