package sqlite

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/puntoventa/internal/domain/entity"
	"github.com/jhoicas/puntoventa/internal/domain/repository"
)

var _ repository.ExpenseRepository = (*ExpenseRepo)(nil)

const expenseCols = `id, name, description, amount, category, is_recurring, date,
	created_at, updated_at, is_active`

// ExpenseRepo implementación del puerto ExpenseRepository sobre SQLite.
type ExpenseRepo struct {
	q Querier
}

// NewExpenseRepository construye el adaptador. Pasar conexión o tx (Querier).
func NewExpenseRepository(q Querier) *ExpenseRepo {
	return &ExpenseRepo{q: q}
}

func scanExpense(s interface{ Scan(dest ...any) error }) (*entity.Expense, error) {
	var e entity.Expense
	err := s.Scan(
		&e.ID, &e.Name, &e.Description, &e.Amount, &e.Category, &e.Recurring,
		&e.Date, &e.CreatedAt, &e.UpdatedAt, &e.Active,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *ExpenseRepo) queryExpenses(query string, args ...any) ([]*entity.Expense, error) {
	rows, err := r.q.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	var out []*entity.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// GetAll gastos activos, más recientes primero.
func (r *ExpenseRepo) GetAll() ([]*entity.Expense, error) {
	return r.queryExpenses(`SELECT ` + expenseCols + `
		FROM expenses WHERE is_active = 1 ORDER BY created_at DESC, id DESC`)
}

// GetByID obtiene un gasto activo por ID; nil si no existe o está inactivo.
func (r *ExpenseRepo) GetByID(id int64) (*entity.Expense, error) {
	e, err := scanExpense(r.q.QueryRow(`SELECT `+expenseCols+`
		FROM expenses WHERE id = ? AND is_active = 1`, id))
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get expense: %w", err)
	}
	return e, nil
}

func (r *ExpenseRepo) Exists(id int64) (bool, error) {
	return rowExists(r.q, "expenses", id)
}

func (r *ExpenseRepo) Count() (int64, error) {
	return activeCount(r.q, "expenses")
}

// Create persiste un nuevo gasto.
func (r *ExpenseRepo) Create(e *entity.Expense) error {
	now := time.Now().UTC()
	if e.Date.IsZero() {
		e.Date = now
	}
	res, err := r.q.Exec(`
		INSERT INTO expenses (name, description, amount, category, is_recurring, date,
			created_at, updated_at, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, 1)`,
		e.Name, e.Description, e.Amount, e.Category, e.Recurring, e.Date.UTC(), now, now,
	)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
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
func (r *ExpenseRepo) Update(id int64, patch entity.ExpensePatch) (*entity.Expense, error) {
	var sets []string
	var args []any
	add := func(col string, v any) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}
	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.Amount != nil {
		add("amount", *patch.Amount)
	}
	if patch.Category != nil {
		add("category", *patch.Category)
	}
	if patch.Recurring != nil {
		add("is_recurring", *patch.Recurring)
	}
	if patch.Date != nil {
		add("date", patch.Date.UTC())
	}
	if len(sets) == 0 {
		return r.GetByID(id)
	}

	add("updated_at", time.Now().UTC())
	args = append(args, id)
	_, err := r.q.Exec(`UPDATE expenses SET `+strings.Join(sets, ", ")+`
		WHERE id = ? AND is_active = 1`, args...)
	if err != nil {
		return nil, fmt.Errorf("update expense: %w", err)
	}
	return r.GetByID(id)
}

func (r *ExpenseRepo) Delete(id int64) (bool, error) {
	return setActive(r.q, "expenses", id, false)
}

func (r *ExpenseRepo) Restore(id int64) (bool, error) {
	return setActive(r.q, "expenses", id, true)
}

// ListByDateRange gastos activos con fecha en el rango semiabierto [from, to).
func (r *ExpenseRepo) ListByDateRange(from, to time.Time) ([]*entity.Expense, error) {
	return r.queryExpenses(`SELECT `+expenseCols+`
		FROM expenses WHERE is_active = 1 AND date >= ? AND date < ?
		ORDER BY date DESC, id DESC`, from.UTC(), to.UTC())
}

// ListRecurring gastos activos recurrentes (costo fijo del punto de equilibrio).
func (r *ExpenseRepo) ListRecurring() ([]*entity.Expense, error) {
	return r.queryExpenses(`SELECT ` + expenseCols + `
		FROM expenses WHERE is_active = 1 AND is_recurring = 1
		ORDER BY amount DESC, id DESC`)
}
