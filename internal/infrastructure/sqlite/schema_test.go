package sqlite_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/puntoventa/internal/domain/repository"
	"github.com/jhoicas/puntoventa/internal/infrastructure/sqlite"
)

// newTestDB abre una base en memoria con el esquema al día.
func newTestDB(t *testing.T) (*sqlite.DB, *repository.Repos) {
	t.Helper()
	db, err := sqlite.Open(":memory:", sqlite.Options{})
	require.NoError(t, err, "abrir base en memoria")
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Initialize(), "aplicar migraciones")
	return db, sqlite.NewRepos(db.SQL())
}

func TestInitialize_Idempotente(t *testing.T) {
	db, _ := newTestDB(t)

	// Segunda y tercera pasada con la base al día: no deben fallar ni duplicar nada.
	require.NoError(t, db.Initialize(), "Initialize debe ser idempotente")
	require.NoError(t, db.Initialize())

	var n int
	err := db.SQL().QueryRow(`SELECT COUNT(*) FROM schema_version`).Scan(&n)
	require.NoError(t, err)
	assert.Equal(t, sqlite.SchemaVersion, n,
		"debe haber exactamente una fila por versión aplicada")
}

func TestInitialize_VersionRegistrada(t *testing.T) {
	db, _ := newTestDB(t)

	var v int
	err := db.SQL().QueryRow(`SELECT MAX(version) FROM schema_version`).Scan(&v)
	require.NoError(t, err)
	assert.Equal(t, sqlite.SchemaVersion, v, "la versión instalada debe ser la esperada por el binario")
}

func TestInitialize_TablasCreadas(t *testing.T) {
	db, _ := newTestDB(t)

	for _, table := range []string{
		"ingredients", "recipes", "recipe_items", "products",
		"sales", "sale_items", "inventory_transactions", "expenses", "employees",
	} {
		var name string
		err := db.SQL().QueryRow(
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
		).Scan(&name)
		require.NoError(t, err, "la tabla %s debe existir", table)
	}
}
