package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
	"github.com/yigit/registrar/internal/config"
	"github.com/yigit/registrar/internal/pkg/logger"
)

// SQLDB is a database/sql pool for the SQLite and MySQL backends.
type SQLDB struct {
	DB             *sql.DB
	Driver         string
	acquireTimeout time.Duration
}

// driverNames maps configured drivers to registered database/sql names.
var driverNames = map[string]string{
	config.DriverSQLite: "sqlite3",
	config.DriverMySQL:  "mysql",
}

// NewSQLDB opens and pings a database/sql pool for cfg.Database.Driver.
func NewSQLDB(cfg *config.Config) (*SQLDB, error) {
	driverName, ok := driverNames[cfg.Database.Driver]
	if !ok {
		return nil, fmt.Errorf("driver %q is not served by database/sql", cfg.Database.Driver)
	}

	sqlDB, err := sql.Open(driverName, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.Database.Driver, err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(min(cfg.Database.MaxIdleConns, cfg.Database.MaxOpenConns))
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to establish database connection: %w", err)
	}

	return &SQLDB{
		DB:             sqlDB,
		Driver:         cfg.Database.Driver,
		acquireTimeout: cfg.AcquireTimeout(),
	}, nil
}

// Close closes the pool
func (db *SQLDB) Close() {
	if db.DB != nil {
		if err := db.DB.Close(); err != nil {
			logger.Warn().Err(err).Msg("Failed to close database")
		}
	}
}

// Acquire checks a connection out of the pool, waiting at most the configured
// acquire timeout. Callers must Close the connection.
func (db *SQLDB) Acquire(ctx context.Context) (*sql.Conn, error) {
	acquireCtx, cancel := withAcquireTimeout(ctx, db.acquireTimeout)
	defer cancel()

	conn, err := db.DB.Conn(acquireCtx)
	if err != nil {
		return nil, acquireError(ctx, err)
	}
	return conn, nil
}

// WithConnection runs fn on a single acquired connection.
func (db *SQLDB) WithConnection(ctx context.Context, fn func(ctx context.Context, conn *sql.Conn) error) error {
	conn, err := db.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	return fn(ctx, conn)
}

// SQLTransactionFn is a function that executes within a database/sql transaction
type SQLTransactionFn func(ctx context.Context, tx *sql.Tx) error

// WithTransaction runs fn inside a transaction on a single acquired
// connection. The transaction is rolled back when fn fails or panics.
func (db *SQLDB) WithTransaction(ctx context.Context, fn SQLTransactionFn) error {
	conn, err := db.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Error().Err(rbErr).Msg("Failed to rollback transaction")
			return errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
