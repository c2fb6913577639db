package postgres_test

import (
	"context"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/yigit/registrar/internal/app/migrations"
	"github.com/yigit/registrar/internal/app/repositories/postgres"
	"github.com/yigit/registrar/internal/app/repositories/repotest"
	"github.com/yigit/registrar/internal/config"
	"github.com/yigit/registrar/internal/db"
)

// TestPostgresRepositories needs a disposable database in TEST_DATABASE_URL.
func TestPostgresRepositories(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	require.NoError(t, migrations.MigratePostgres(ctx, dsn, zerolog.Nop()))

	cfg := &config.Config{}
	cfg.Database.Driver = config.DriverPostgres
	cfg.Database.URL = dsn
	cfg.Database.MaxOpenConns = 10
	cfg.Database.MaxIdleConns = 1
	cfg.Database.ConnMaxLifetime = "1h"
	cfg.Database.AcquireTimeout = "5s"

	pg, err := db.NewPostgresDB(cfg)
	require.NoError(t, err)
	t.Cleanup(pg.Close)

	repotest.Run(t, func(t *testing.T) repotest.Backend {
		_, err := pg.Pool.Exec(ctx, `TRUNCATE students_courses, students, courses RESTART IDENTITY CASCADE`)
		require.NoError(t, err)
		return repotest.Backend{
			Repos: postgres.NewRepositories(pg),
			CountOrphans: func(ctx context.Context) (int, error) {
				var n int
				err := pg.Pool.QueryRow(ctx, repotest.OrphanEnrollmentsQuery).Scan(&n)
				return n, err
			},
		}
	})
}
