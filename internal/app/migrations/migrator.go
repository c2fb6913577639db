package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Migrator applies embedded migrations to the database/sql backends
// (SQLite, MySQL). Applied versions are tracked in schema_migrations.
type Migrator struct {
	db     *sql.DB
	source fs.FS
	lgr    zerolog.Logger
}

// NewMigrator creates a migrator reading .sql files from source.
func NewMigrator(db *sql.DB, source fs.FS, lgr zerolog.Logger) *Migrator {
	return &Migrator{
		db:     db,
		source: source,
		lgr:    lgr,
	}
}

func (m *Migrator) ensureMigrationTableExists(ctx context.Context) error {
	createTableSQL := `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version VARCHAR(255) PRIMARY KEY,
		applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`

	if _, err := m.db.ExecContext(ctx, createTableSQL); err != nil {
		return fmt.Errorf("failed to create migration tracking table: %w", err)
	}
	return nil
}

func (m *Migrator) isMigrationApplied(ctx context.Context, version string) (bool, error) {
	var count int
	err := m.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM schema_migrations WHERE version = ?`, version).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check migration status: %w", err)
	}
	return count > 0, nil
}

// Migrate applies every pending migration in filename order and returns the
// number applied.
func (m *Migrator) Migrate(ctx context.Context) (int, error) {
	if err := m.ensureMigrationTableExists(ctx); err != nil {
		return 0, err
	}

	entries, err := fs.ReadDir(m.source, ".")
	if err != nil {
		return 0, fmt.Errorf("failed to read migrations: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	applied := 0
	for _, name := range names {
		ok, err := m.migrateFile(ctx, name)
		if err != nil {
			return applied, err
		}
		if ok {
			applied++
		}
	}

	m.lgr.Info().Int("applied", applied).Int("total", len(names)).Msg("database schema migrated")
	return applied, nil
}

// migrateFile runs one file and records its version in the same transaction.
// MySQL commits DDL implicitly, so there a failed file can leave partial state.
func (m *Migrator) migrateFile(ctx context.Context, name string) (bool, error) {
	version := strings.SplitN(path.Base(name), "_", 2)[0]

	applied, err := m.isMigrationApplied(ctx, version)
	if err != nil {
		return false, err
	}
	if applied {
		m.lgr.Debug().Str("file", name).Msg("migration already applied, skipping")
		return false, nil
	}

	content, err := fs.ReadFile(m.source, name)
	if err != nil {
		return false, fmt.Errorf("failed to read migration file %s: %w", name, err)
	}

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range splitStatements(string(content)) {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return false, fmt.Errorf("migration %s failed: %w", name, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO schema_migrations (version, applied_at) VALUES (?, ?)`,
		version, time.Now().UTC(),
	); err != nil {
		return false, fmt.Errorf("failed to record migration: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}

	m.lgr.Info().Str("file", name).Msg("migration applied")
	return true, nil
}

// splitStatements splits a script on semicolons. Migration files must not
// contain semicolons inside literals.
func splitStatements(script string) []string {
	var stmts []string
	for _, part := range strings.Split(script, ";") {
		if stmt := strings.TrimSpace(part); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}
