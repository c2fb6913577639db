// Package postgres implements the repositories on a pgx connection pool.
package postgres

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/yigit/registrar/internal/app/repositories"
	"github.com/yigit/registrar/internal/db"
)

// Constraint names from the schema migrations
const (
	studentsEmailKey    = "students_email_key"
	coursesNameKey      = "courses_name_key"
	studentsCoursesPkey = "students_courses_pkey"
)

// shareLock keeps a parent row from being deleted until the enrollment
// transaction ends, without blocking other enrollments.
const shareLock = "FOR KEY SHARE"

// querier is satisfied by *pgxpool.Conn and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func statementBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// NewRepositories wires the PostgreSQL repositories around one pool.
func NewRepositories(database *db.PostgresDB) *repositories.Repositories {
	students := NewStudentRepository(database)
	courses := NewCourseRepository(database)
	return &repositories.Repositories{
		StudentRepository:    students,
		CourseRepository:     courses,
		EnrollmentRepository: NewEnrollmentRepository(database, students, courses),
	}
}
