package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// isNoRows distingue "no hay fila" de un fallo real del motor.
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// setActive cambia la bandera is_active de una fila (borrado blando / restauración).
// Devuelve si alguna fila cambió de estado. `table` siempre es una constante interna.
func setActive(q Querier, table string, id int64, active bool) (bool, error) {
	res, err := q.Exec(
		fmt.Sprintf(`UPDATE %s SET is_active = ?, updated_at = ? WHERE id = ? AND is_active = ?`, table),
		active, time.Now().UTC(), id, !active,
	)
	if err != nil {
		return false, fmt.Errorf("set active %s: %w", table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// rowExists indica si existe una fila activa con ese id.
func rowExists(q Querier, table string, id int64) (bool, error) {
	var one int
	err := q.QueryRow(
		fmt.Sprintf(`SELECT 1 FROM %s WHERE id = ? AND is_active = 1`, table), id,
	).Scan(&one)
	if isNoRows(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("exists %s: %w", table, err)
	}
	return true, nil
}

// activeCount cuenta filas activas de la tabla.
func activeCount(q Querier, table string) (int64, error) {
	var n int64
	err := q.QueryRow(fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE is_active = 1`, table)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}

// dayRange devuelve el rango semiabierto [inicio, fin) del día calendario de t (UTC).
func dayRange(t time.Time) (from, to time.Time) {
	t = t.UTC()
	from = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 0, 1)
}

// lastDays devuelve el rango [hoy-days, mañana) para las consultas "últimos N días".
func lastDays(days int) (from, to time.Time) {
	start, end := dayRange(time.Now().UTC())
	return start.AddDate(0, 0, -days), end
}
