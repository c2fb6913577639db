package migrations_test

import (
	"context"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/registrar/internal/app/migrations"
	"github.com/yigit/registrar/internal/config"
	"github.com/yigit/registrar/internal/testutil"
)

func TestFilesPerDriver(t *testing.T) {
	t.Parallel()

	for _, driver := range []string{config.DriverPostgres, config.DriverSQLite, config.DriverMySQL} {
		source, err := migrations.Files(driver)
		require.NoError(t, err, driver)

		content, err := fs.ReadFile(source, "001_create_registrar_tables.sql")
		require.NoError(t, err, driver)
		assert.Contains(t, string(content), "students_courses", driver)
	}

	_, err := migrations.Files("oracle")
	assert.Error(t, err)
}

func TestMigrateIsIdempotent(t *testing.T) {
	t.Parallel()

	sqlDB := testutil.NewSQLiteDB(t)
	ctx := context.Background()

	source, err := migrations.Files(config.DriverSQLite)
	require.NoError(t, err)

	applied, err := migrations.NewMigrator(sqlDB.DB, source, zerolog.Nop()).Migrate(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, applied)

	var tables int
	err = sqlDB.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('students', 'courses', 'students_courses')`,
	).Scan(&tables)
	require.NoError(t, err)
	assert.Equal(t, 3, tables)
}

func TestMigrateRollsBackFailedFile(t *testing.T) {
	t.Parallel()

	sqlDB := testutil.NewSQLiteDB(t)
	ctx := context.Background()

	source := fstest.MapFS{
		"002_add_rooms.sql": {Data: []byte("CREATE TABLE rooms (id INTEGER PRIMARY KEY);")},
		"003_broken.sql":    {Data: []byte("CREATE TABLE broken (id INTEGER PRIMARY KEY); INSERT INTO nowhere VALUES (1);")},
		"notes.txt":         {Data: []byte("ignored")},
	}

	applied, err := migrations.NewMigrator(sqlDB.DB, source, zerolog.Nop()).Migrate(ctx)
	require.Error(t, err)
	assert.Equal(t, 1, applied)

	var count int
	require.NoError(t, sqlDB.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'broken'`).Scan(&count))
	assert.Zero(t, count)

	require.NoError(t, sqlDB.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM schema_migrations WHERE version = '003'`).Scan(&count))
	assert.Zero(t, count)
}
