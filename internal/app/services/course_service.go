package services

import (
	"context"
	"strings"

	"github.com/yigit/registrar/internal/app/models"
	"github.com/yigit/registrar/internal/app/repositories"
	"github.com/yigit/registrar/internal/pkg/apperrors"
	"github.com/yigit/registrar/internal/pkg/validation"
)

// CourseService defines the interface for course-related operations
type CourseService interface {
	CreateCourse(ctx context.Context, name string, description *string) (*models.Course, error)
	GetCourseByName(ctx context.Context, name string) (*models.Course, error)
	DeleteCourse(ctx context.Context, name string) (int64, error)
}

type courseServiceImpl struct {
	courseRepo repositories.CourseRepository
}

// NewCourseService creates a new course service instance
func NewCourseService(courseRepo repositories.CourseRepository) CourseService {
	return &courseServiceImpl{
		courseRepo: courseRepo,
	}
}

// CreateCourse creates a course with a trimmed, non-blank name
func (s *courseServiceImpl) CreateCourse(ctx context.Context, name string, description *string) (*models.Course, error) {
	if !validation.IsValidCourseName(name) {
		return nil, apperrors.ErrInvalidCourseName
	}
	name = strings.TrimSpace(name)

	if description != nil && strings.TrimSpace(*description) == "" {
		description = nil
	}

	return s.courseRepo.Create(ctx, name, description)
}

// GetCourseByName retrieves a course by name
func (s *courseServiceImpl) GetCourseByName(ctx context.Context, name string) (*models.Course, error) {
	name, err := requireParam("name", name)
	if err != nil {
		return nil, err
	}
	return s.courseRepo.GetByName(ctx, name)
}

// DeleteCourse removes a course and, through the cascade, its enrollments
func (s *courseServiceImpl) DeleteCourse(ctx context.Context, name string) (int64, error) {
	name, err := requireParam("name", name)
	if err != nil {
		return 0, err
	}
	return s.courseRepo.DeleteByName(ctx, name)
}
