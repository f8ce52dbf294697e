package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jhoicas/puntoventa/internal/domain"
)

// SchemaVersion versión de esquema que este binario espera.
const SchemaVersion = 2

// migrations DDL/DML por versión destino. Cada versión se aplica completa en su
// propia transacción y el número de versión se registra en esa misma transacción:
// una versión es visible si y solo si su migración terminó bien.
var migrations = map[int][]string{
	1: {
		`CREATE TABLE ingredients (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			cost_per_unit REAL NOT NULL DEFAULT 0,
			unit TEXT NOT NULL,
			quantity_in_stock REAL NOT NULL DEFAULT 0,
			low_stock_threshold REAL NOT NULL DEFAULT 0,
			supplier TEXT NOT NULL DEFAULT '',
			expiration_date DATETIME,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			is_active INTEGER NOT NULL DEFAULT 1
		)`,
		`CREATE TABLE recipes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			servings INTEGER NOT NULL DEFAULT 1,
			total_cost REAL NOT NULL DEFAULT 0,
			cost_per_serving REAL NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			is_active INTEGER NOT NULL DEFAULT 1
		)`,
		`CREATE TABLE recipe_items (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			recipe_id INTEGER NOT NULL REFERENCES recipes(id),
			ingredient_id INTEGER NOT NULL REFERENCES ingredients(id),
			quantity REAL NOT NULL,
			unit TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			is_active INTEGER NOT NULL DEFAULT 1
		)`,
		`CREATE INDEX idx_recipe_items_recipe ON recipe_items(recipe_id)`,
		`CREATE TABLE products (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			category TEXT NOT NULL,
			price REAL NOT NULL DEFAULT 0,
			recipe_id INTEGER REFERENCES recipes(id),
			track_inventory INTEGER NOT NULL DEFAULT 0,
			image_path TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			is_active INTEGER NOT NULL DEFAULT 1
		)`,
		`CREATE TABLE sales (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			reference TEXT NOT NULL DEFAULT '',
			subtotal REAL NOT NULL DEFAULT 0,
			discount_amount REAL NOT NULL DEFAULT 0,
			discount_percent REAL NOT NULL DEFAULT 0,
			total REAL NOT NULL DEFAULT 0,
			payment_method TEXT NOT NULL,
			amount_received REAL NOT NULL DEFAULT 0,
			change_amount REAL NOT NULL DEFAULT 0,
			notes TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			is_active INTEGER NOT NULL DEFAULT 1
		)`,
		`CREATE INDEX idx_sales_created ON sales(created_at)`,
		`CREATE TABLE sale_items (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			sale_id INTEGER NOT NULL REFERENCES sales(id),
			product_id INTEGER NOT NULL REFERENCES products(id),
			quantity INTEGER NOT NULL,
			unit_price REAL NOT NULL DEFAULT 0,
			subtotal REAL NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			is_active INTEGER NOT NULL DEFAULT 1
		)`,
		`CREATE INDEX idx_sale_items_sale ON sale_items(sale_id)`,
		`CREATE TABLE inventory_transactions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			ingredient_id INTEGER NOT NULL REFERENCES ingredients(id),
			type TEXT NOT NULL,
			quantity REAL NOT NULL,
			unit_cost REAL,
			note TEXT NOT NULL DEFAULT '',
			sale_id INTEGER REFERENCES sales(id),
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			is_active INTEGER NOT NULL DEFAULT 1
		)`,
		`CREATE INDEX idx_invtx_ingredient ON inventory_transactions(ingredient_id)`,
		`CREATE TABLE expenses (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			amount REAL NOT NULL DEFAULT 0,
			category TEXT NOT NULL DEFAULT '',
			is_recurring INTEGER NOT NULL DEFAULT 0,
			date DATETIME NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			is_active INTEGER NOT NULL DEFAULT 1
		)`,
		`CREATE TABLE employees (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT '',
			wage_type TEXT NOT NULL,
			wage_amount REAL NOT NULL DEFAULT 0,
			pin_hash TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			is_active INTEGER NOT NULL DEFAULT 1
		)`,
	},
	// v2: batch_id agrupa los movimientos del ledger que nacen de una misma
	// operación (una venta, una anulación) y sale_id gana índice para la reversión.
	2: {
		`ALTER TABLE inventory_transactions ADD COLUMN batch_id TEXT NOT NULL DEFAULT ''`,
		`CREATE INDEX idx_invtx_sale ON inventory_transactions(sale_id)`,
		`CREATE INDEX idx_invtx_batch ON inventory_transactions(batch_id)`,
	},
}

// Initialize aplica las migraciones pendientes en orden estricto. Es idempotente
// y segura en cada arranque: con la base al día no hace nada. Una versión
// esperada sin migración definida es un error fatal de arranque.
func (d *DB) Initialize() error {
	if _, err := d.sql.Exec(`CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME NOT NULL
	)`); err != nil {
		return fmt.Errorf("crear schema_version: %w", err)
	}

	installed, err := d.installedVersion()
	if err != nil {
		return err
	}

	for v := installed + 1; v <= SchemaVersion; v++ {
		stmts, ok := migrations[v]
		if !ok {
			return fmt.Errorf("%w: v%d", domain.ErrMissingMigration, v)
		}
		if err := d.applyMigration(v, stmts); err != nil {
			return fmt.Errorf("aplicar migración v%d: %w", v, err)
		}
	}
	return nil
}

// installedVersion lee la versión instalada; 0 con la tabla vacía.
func (d *DB) installedVersion() (int, error) {
	var v sql.NullInt64
	err := d.sql.QueryRow(`SELECT MAX(version) FROM schema_version`).Scan(&v)
	if err != nil {
		return 0, fmt.Errorf("leer versión de esquema: %w", err)
	}
	if !v.Valid {
		return 0, nil
	}
	return int(v.Int64), nil
}

// applyMigration ejecuta los statements de una versión y registra la versión,
// todo dentro de una transacción: o entra completa o no entra.
func (d *DB) applyMigration(version int, stmts []string) error {
	tx, err := d.sql.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}
	if _, err := tx.Exec(`INSERT INTO schema_version (version, applied_at) VALUES (?, ?)`,
		version, time.Now().UTC()); err != nil {
		return err
	}
	return tx.Commit()
}
