// Package sqlstore implements the repositories on database/sql for the
// SQLite and MySQL drivers.
package sqlstore

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"

	"github.com/yigit/registrar/internal/app/repositories"
	"github.com/yigit/registrar/internal/config"
	"github.com/yigit/registrar/internal/db"
)

// Dialect holds the per-driver SQL differences.
type Dialect struct {
	Driver string
	// ShareLock is appended to parent lookups inside enrollment transactions.
	// SQLite has no row locks; its transactions begin IMMEDIATE instead.
	ShareLock string
}

// DialectFor returns the dialect of a configured driver.
func DialectFor(driver string) Dialect {
	switch driver {
	case config.DriverMySQL:
		return Dialect{Driver: driver, ShareLock: "LOCK IN SHARE MODE"}
	default:
		return Dialect{Driver: config.DriverSQLite}
	}
}

// querier is satisfied by *sql.Conn and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func statementBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)
}

// NewRepositories wires the database/sql repositories around one pool.
func NewRepositories(database *db.SQLDB) *repositories.Repositories {
	dialect := DialectFor(database.Driver)
	students := NewStudentRepository(database)
	courses := NewCourseRepository(database)
	return &repositories.Repositories{
		StudentRepository:    students,
		CourseRepository:     courses,
		EnrollmentRepository: NewEnrollmentRepository(database, dialect, students, courses),
	}
}
