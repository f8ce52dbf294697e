package sqlite

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/puntoventa/internal/domain"
)

// Una versión esperada sin migración definida es un error fatal de arranque:
// Initialize aborta sin registrar nada.
func TestInitialize_MigracionFaltante(t *testing.T) {
	saved := migrations[1]
	delete(migrations, 1)
	defer func() { migrations[1] = saved }()

	db, err := Open(":memory:", Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	err = db.Initialize()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMissingMigration)

	var v sql.NullInt64
	require.NoError(t, db.SQL().QueryRow(`SELECT MAX(version) FROM schema_version`).Scan(&v))
	assert.False(t, v.Valid, "schema_version debe quedar sin versiones registradas")
}

// Si falta una versión intermedia, las anteriores quedan aplicadas (cada una es
// atómica) y un Initialize posterior con el mapa completo termina la actualización.
func TestInitialize_MigracionFaltanteIntermedia(t *testing.T) {
	saved := migrations[SchemaVersion]
	delete(migrations, SchemaVersion)
	defer func() { migrations[SchemaVersion] = saved }()

	db, err := Open(":memory:", Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	err = db.Initialize()
	require.ErrorIs(t, err, domain.ErrMissingMigration)

	installed, err := db.installedVersion()
	require.NoError(t, err)
	assert.Equal(t, SchemaVersion-1, installed,
		"las versiones anteriores a la faltante deben quedar registradas")

	migrations[SchemaVersion] = saved
	require.NoError(t, db.Initialize(), "con el mapa completo la actualización debe terminar")
	installed, err = db.installedVersion()
	require.NoError(t, err)
	assert.Equal(t, SchemaVersion, installed)
}
