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

var courseColumns = []string{"id", "name", "description"}

// CourseRepository handles course database operations
type CourseRepository struct {
	db *db.SQLDB
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(database *db.SQLDB) *CourseRepository {
	return &CourseRepository{
		db: database,
		sb: statementBuilder(),
	}
}

// Create inserts a course and reads the stored row back on the same connection
func (r *CourseRepository) Create(ctx context.Context, name string, description *string) (*models.Course, error) {
	query, args, err := r.sb.Insert("courses").
		Columns("name", "description").
		Values(name, helpers.GetNullString(description)).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create course SQL")
		return nil, fmt.Errorf("failed to build create course query: %w", err)
	}

	var course *models.Course
	err = r.db.WithConnection(ctx, func(ctx context.Context, conn *sql.Conn) error {
		if _, err := conn.ExecContext(ctx, query, args...); err != nil {
			return err
		}
		var findErr error
		course, findErr = r.findByName(ctx, conn, name, "")
		return findErr
	})
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			logger.Warn().Str("name", name).Msg("Attempted to create duplicate course")
			return nil, apperrors.ErrCourseAlreadyExists
		}
		logger.Error().Err(err).Str("name", name).Msg("Error executing create course query")
		return nil, fmt.Errorf("error creating course: %w", err)
	}

	logger.Info().Int64("courseID", course.ID).Str("name", name).Msg("Course created successfully")
	return course, nil
}

// GetByName retrieves a course by its unique name
func (r *CourseRepository) GetByName(ctx context.Context, name string) (*models.Course, error) {
	var course *models.Course
	err := r.db.WithConnection(ctx, func(ctx context.Context, conn *sql.Conn) error {
		var findErr error
		course, findErr = r.findByName(ctx, conn, name, "")
		return findErr
	})
	if err != nil {
		return nil, err
	}
	return course, nil
}

// DeleteByName removes a course; enrollments go with it through the cascade
func (r *CourseRepository) DeleteByName(ctx context.Context, name string) (int64, error) {
	query, args, err := r.sb.Delete("courses").Where(squirrel.Eq{"name": name}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build delete course query: %w", err)
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
		logger.Error().Err(err).Str("name", name).Msg("Error deleting course")
		return 0, fmt.Errorf("error deleting course: %w", err)
	}

	logger.Info().Str("name", name).Int64("removed", removed).Msg("Course delete executed")
	return removed, nil
}

func (r *CourseRepository) findByName(ctx context.Context, q querier, name, lock string) (*models.Course, error) {
	builder := r.sb.Select(courseColumns...).
		From("courses").
		Where(squirrel.Eq{"name": name}).
		Limit(1)
	if lock != "" {
		builder = builder.Suffix(lock)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get course by name SQL")
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	course, err := scanCourse(q.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Warn().Str("name", name).Msg("Course not found by name")
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Str("name", name).Msg("Error scanning course row")
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}
	return course, nil
}

func scanCourse(row rowScanner) (*models.Course, error) {
	var (
		course      models.Course
		description sql.NullString
	)
	if err := row.Scan(&course.ID, &course.Name, &description); err != nil {
		return nil, err
	}
	course.Description = helpers.NullStringPtr(description)
	return &course, nil
}
