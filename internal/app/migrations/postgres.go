package migrations

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	tern "github.com/jackc/tern/v2/migrate"
	"github.com/rs/zerolog"
	"github.com/yigit/registrar/internal/config"
)

// versionTable is where tern records the applied PostgreSQL schema version.
const versionTable = "schema_version"

// MigratePostgres brings a PostgreSQL database to the latest schema using a
// dedicated connection outside the pool.
func MigratePostgres(ctx context.Context, dsn string, lgr zerolog.Logger) error {
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return fmt.Errorf("connecting for migrations: %w", err)
	}
	defer conn.Close(ctx)

	m, err := tern.NewMigrator(ctx, conn, versionTable)
	if err != nil {
		return fmt.Errorf("constructing database migrator: %w", err)
	}

	source, err := Files(config.DriverPostgres)
	if err != nil {
		return err
	}
	if err := m.LoadMigrations(source); err != nil {
		return fmt.Errorf("loading database migrations: %w", err)
	}

	from, err := m.GetCurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("retrieving current database migration version: %w", err)
	}

	if err := m.Migrate(ctx); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}

	if from == int32(len(m.Migrations)) {
		lgr.Info().Msgf("database schema up to date, version %d", len(m.Migrations))
	} else {
		lgr.Info().Msgf("migrated database schema, from %d to %d", from, len(m.Migrations))
	}
	return nil
}
