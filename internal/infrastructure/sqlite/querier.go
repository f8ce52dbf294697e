package sqlite

import "database/sql"

// Querier abstrae *sql.DB y *sql.Tx para que cada repositorio funcione igual
// con la conexión compartida o dentro de una transacción del TxRunner.
type Querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

var (
	_ Querier = (*sql.DB)(nil)
	_ Querier = (*sql.Tx)(nil)
)
