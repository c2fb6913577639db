package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yigit/registrar/internal/app/models"
	"github.com/yigit/registrar/internal/db"
	"github.com/yigit/registrar/internal/pkg/apperrors"
	"github.com/yigit/registrar/internal/pkg/dberrors"
	"github.com/yigit/registrar/internal/pkg/logger"
)

var studentColumns = []string{"id", "email", "phone_number", "created_at", "updated_at"}

// StudentRepository handles student database operations
type StudentRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(database *db.PostgresDB) *StudentRepository {
	return &StudentRepository{
		db: database,
		sb: statementBuilder(),
	}
}

// Create inserts a student and returns the stored row
func (r *StudentRepository) Create(ctx context.Context, email string, phoneNumber *string) (*models.Student, error) {
	query, args, err := r.sb.Insert("students").
		Columns("email", "phone_number").
		Values(email, phoneNumber).
		Suffix("RETURNING id, email, phone_number, created_at, updated_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create student SQL")
		return nil, fmt.Errorf("failed to build create student query: %w", err)
	}

	var student *models.Student
	err = r.db.WithConnection(ctx, func(ctx context.Context, conn *pgxpool.Conn) error {
		var scanErr error
		student, scanErr = scanStudent(conn.QueryRow(ctx, query, args...))
		return scanErr
	})
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, studentsEmailKey) {
			logger.Warn().Str("email", email).Msg("Attempted to create student with duplicate email")
			return nil, apperrors.ErrStudentAlreadyExists
		}
		logger.Error().Err(err).Str("email", email).Msg("Error executing create student query")
		return nil, fmt.Errorf("error creating student: %w", err)
	}

	logger.Info().Int64("studentID", student.ID).Str("email", email).Msg("Student created successfully")
	return student, nil
}

// GetByEmail retrieves a student by email
func (r *StudentRepository) GetByEmail(ctx context.Context, email string) (*models.Student, error) {
	var student *models.Student
	err := r.db.WithConnection(ctx, func(ctx context.Context, conn *pgxpool.Conn) error {
		var findErr error
		student, findErr = r.findByEmail(ctx, conn, email, "")
		return findErr
	})
	if err != nil {
		return nil, err
	}
	return student, nil
}

// DeleteByEmail removes a student; enrollments go with it through the cascade
func (r *StudentRepository) DeleteByEmail(ctx context.Context, email string) (int64, error) {
	query, args, err := r.sb.Delete("students").Where(squirrel.Eq{"email": email}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build delete student query: %w", err)
	}

	var removed int64
	err = r.db.WithConnection(ctx, func(ctx context.Context, conn *pgxpool.Conn) error {
		tag, execErr := conn.Exec(ctx, query, args...)
		if execErr != nil {
			return execErr
		}
		removed = tag.RowsAffected()
		return nil
	})
	if err != nil {
		logger.Error().Err(err).Str("email", email).Msg("Error deleting student")
		return 0, fmt.Errorf("error deleting student: %w", err)
	}

	logger.Info().Str("email", email).Int64("removed", removed).Msg("Student delete executed")
	return removed, nil
}

// findByEmail runs on q so it can join the caller's transaction; lock is
// appended to the query when non-empty.
func (r *StudentRepository) findByEmail(ctx context.Context, q querier, email, lock string) (*models.Student, error) {
	builder := r.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"email": email}).
		Limit(1)
	if lock != "" {
		builder = builder.Suffix(lock)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get student by email SQL")
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student, err := scanStudent(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.Warn().Str("email", email).Msg("Student not found by email")
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Str("email", email).Msg("Error scanning student row")
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	return student, nil
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	var student models.Student
	if err := row.Scan(&student.ID, &student.Email, &student.PhoneNumber, &student.CreatedAt, &student.UpdatedAt); err != nil {
		return nil, err
	}
	return &student, nil
}
