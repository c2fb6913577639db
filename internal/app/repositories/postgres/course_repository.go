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

var courseColumns = []string{"id", "name", "description"}

// CourseRepository handles course database operations
type CourseRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(database *db.PostgresDB) *CourseRepository {
	return &CourseRepository{
		db: database,
		sb: statementBuilder(),
	}
}

// Create inserts a course and returns the stored row
func (r *CourseRepository) Create(ctx context.Context, name string, description *string) (*models.Course, error) {
	query, args, err := r.sb.Insert("courses").
		Columns("name", "description").
		Values(name, description).
		Suffix("RETURNING id, name, description").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create course SQL")
		return nil, fmt.Errorf("failed to build create course query: %w", err)
	}

	var course *models.Course
	err = r.db.WithConnection(ctx, func(ctx context.Context, conn *pgxpool.Conn) error {
		var scanErr error
		course, scanErr = scanCourse(conn.QueryRow(ctx, query, args...))
		return scanErr
	})
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, coursesNameKey) {
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
	err := r.db.WithConnection(ctx, func(ctx context.Context, conn *pgxpool.Conn) error {
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
	err = r.db.WithConnection(ctx, func(ctx context.Context, conn *pgxpool.Conn) error {
		tag, execErr := conn.Exec(ctx, query, args...)
		if execErr != nil {
			return execErr
		}
		removed = tag.RowsAffected()
		return nil
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

	course, err := scanCourse(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.Warn().Str("name", name).Msg("Course not found by name")
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Str("name", name).Msg("Error scanning course row")
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}
	return course, nil
}

func scanCourse(row pgx.Row) (*models.Course, error) {
	var course models.Course
	if err := row.Scan(&course.ID, &course.Name, &course.Description); err != nil {
		return nil, err
	}
	return &course, nil
}
