// Package testutil builds throwaway SQLite databases for tests.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/yigit/registrar/internal/app/migrations"
	"github.com/yigit/registrar/internal/config"
	"github.com/yigit/registrar/internal/db"
)

// SQLiteConfig returns a test-mode config pointing at a fresh SQLite file.
func SQLiteConfig(t testing.TB) *config.Config {
	t.Helper()

	cfg := &config.Config{}
	cfg.Server.Port = "0"
	cfg.Server.Mode = config.ModeTest
	cfg.Server.ShutdownTimeout = "1s"
	cfg.Database.Driver = config.DriverSQLite
	cfg.Database.Path = filepath.Join(t.TempDir(), "registrar.db")
	cfg.Database.MaxOpenConns = 4
	cfg.Database.MaxIdleConns = 4
	cfg.Database.ConnMaxLifetime = "1h"
	cfg.Database.AcquireTimeout = "2s"
	cfg.Logging.Level = "error"
	return cfg
}

// OpenSQLite opens cfg's database and applies the embedded migrations.
func OpenSQLite(t testing.TB, cfg *config.Config) *db.SQLDB {
	t.Helper()

	sqlDB, err := db.NewSQLDB(cfg)
	require.NoError(t, err)
	t.Cleanup(sqlDB.Close)

	source, err := migrations.Files(config.DriverSQLite)
	require.NoError(t, err)

	_, err = migrations.NewMigrator(sqlDB.DB, source, zerolog.Nop()).Migrate(context.Background())
	require.NoError(t, err)

	return sqlDB
}

// NewSQLiteDB is OpenSQLite over a fresh SQLiteConfig.
func NewSQLiteDB(t testing.TB) *db.SQLDB {
	t.Helper()
	return OpenSQLite(t, SQLiteConfig(t))
}
