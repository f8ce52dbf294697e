package sqlite

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// DB es el dueño único del handle SQLite del proceso. Se abre una vez al
// arrancar y los repositorios lo piden prestado por llamada; solo este tipo
// puede abrirlo o cerrarlo.
type DB struct {
	sql *sql.DB
}

// Options opciones de apertura.
type Options struct {
	// BusyTimeoutMS milisegundos de espera si el archivo está bloqueado.
	BusyTimeoutMS int
}

// Open abre (o crea) el archivo de base de datos con foreign keys activas y
// journal WAL. Usar ":memory:" para pruebas. La conexión real es perezosa:
// el Ping fuerza la apertura y la aplicación de los PRAGMA del DSN.
func Open(path string, opts Options) (*DB, error) {
	busy := opts.BusyTimeoutMS
	if busy <= 0 {
		busy = 5000
	}
	dsn := fmt.Sprintf("%s?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=%d", path, busy)

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("abrir base de datos: %w", err)
	}
	// Un solo escritor local: una conexión evita SQLITE_BUSY entre goroutines.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping base de datos: %w", err)
	}
	return &DB{sql: db}, nil
}

// SQL expone el handle compartido (Querier) para repositorios y TxRunner.
func (d *DB) SQL() *sql.DB {
	return d.sql
}

// Close cierra el handle. Es idempotente: cerrar dos veces no falla.
func (d *DB) Close() error {
	if d == nil || d.sql == nil {
		return nil
	}
	err := d.sql.Close()
	d.sql = nil
	return err
}
