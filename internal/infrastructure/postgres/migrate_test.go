package postgres

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPgx5URL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@db:5432/fleet?sslmode=disable", pgx5URL("postgres://u:p@db:5432/fleet?sslmode=disable"))
	assert.Equal(t, "pgx5://u@db/fleet", pgx5URL("postgresql://u@db/fleet"))
	assert.Equal(t, "pgx5://x", pgx5URL("pgx5://x"))
}

func TestMigrations_ParesUpDown(t *testing.T) {
	ups, err := fs.Glob(migrationsFS, "migrations/*.up.sql")
	require.NoError(t, err)
	downs, err := fs.Glob(migrationsFS, "migrations/*.down.sql")
	require.NoError(t, err)
	require.NotEmpty(t, ups)
	assert.Len(t, downs, len(ups))
}

func TestMigrations_IndicesDeUnicidad(t *testing.T) {
	b, err := migrationsFS.ReadFile("migrations/000001_init.up.sql")
	require.NoError(t, err)
	sql := string(b)
	assert.Contains(t, sql, "UNIQUE (equipment_id, slot_number)")
	assert.Contains(t, sql, "ON leased_equipments (equipment_id, assigned_to_id) WHERE end_date IS NULL")
	assert.Contains(t, sql, "ON leased_simcards (simcard_id, assigned_to_id) WHERE end_date IS NULL")
}
