package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/yigit/registrar/internal/app/models"
	"github.com/yigit/registrar/internal/db"
	"github.com/yigit/registrar/internal/pkg/apperrors"
	"github.com/yigit/registrar/internal/pkg/dberrors"
	"github.com/yigit/registrar/internal/pkg/helpers"
	"github.com/yigit/registrar/internal/pkg/logger"
)

var studentColumns = []string{"id", "email", "phone_number", "created_at", "updated_at"}

// StudentRepository handles student database operations
type StudentRepository struct {
	db *db.SQLDB
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(database *db.SQLDB) *StudentRepository {
	return &StudentRepository{
		db: database,
		sb: statementBuilder(),
	}
}

// Create inserts a student and reads the stored row back on the same connection
func (r *StudentRepository) Create(ctx context.Context, email string, phoneNumber *string) (*models.Student, error) {
	query, args, err := r.sb.Insert("students").
		Columns("email", "phone_number").
		Values(email, helpers.GetNullString(phoneNumber)).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create student SQL")
		return nil, fmt.Errorf("failed to build create student query: %w", err)
	}

	var student *models.Student
	err = r.db.WithConnection(ctx, func(ctx context.Context, conn *sql.Conn) error {
		if _, err := conn.ExecContext(ctx, query, args...); err != nil {
			return err
		}
		var findErr error
		student, findErr = r.findByEmail(ctx, conn, email, "")
		return findErr
	})
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
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
	err := r.db.WithConnection(ctx, func(ctx context.Context, conn *sql.Conn) error {
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
	err = r.db.WithTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		removed, err = res.RowsAffected()
		return err
	})
	if err != nil {
		logger.Error().Err(err).Str("email", email).Msg("Error deleting student")
		return 0, fmt.Errorf("error deleting student: %w", err)
	}

	logger.Info().Str("email", email).Int64("removed", removed).Msg("Student delete executed")
	return removed, nil
}

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

	student, err := scanStudent(q.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Warn().Str("email", email).Msg("Student not found by email")
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Str("email", email).Msg("Error scanning student row")
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	return student, nil
}

func scanStudent(row rowScanner) (*models.Student, error) {
	var (
		student   models.Student
		phone     sql.NullString
		createdAt sql.NullTime
		updatedAt sql.NullTime
	)
	if err := row.Scan(&student.ID, &student.Email, &phone, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	student.PhoneNumber = helpers.NullStringPtr(phone)
	student.CreatedAt = helpers.NullTimePtr(createdAt)
	student.UpdatedAt = helpers.NullTimePtr(updatedAt)
	return &student, nil
}
