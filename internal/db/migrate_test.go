package db

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMigrationURL(t *testing.T) {
	require.Equal(t, "pgx5://u:p@localhost:5432/cetak?sslmode=disable", MigrationURL("postgres://u:p@localhost:5432/cetak?sslmode=disable"))
	require.Equal(t, "pgx5://localhost/cetak", MigrationURL("postgresql://localhost/cetak"))
	require.Equal(t, "pgx5://already", MigrationURL("pgx5://already"))
}

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	ups, err := fs.Glob(migrationsFS, "migrations/*.up.sql")
	require.NoError(t, err)
	downs, err := fs.Glob(migrationsFS, "migrations/*.down.sql")
	require.NoError(t, err)
	require.NotEmpty(t, ups)
	require.Len(t, downs, len(ups))
}
