package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/yigit/registrar/internal/app/models"
	"github.com/yigit/registrar/internal/app/repositories"
	"github.com/yigit/registrar/internal/pkg/apperrors"
	"github.com/yigit/registrar/internal/pkg/validation"
)

// StudentService defines the interface for student-related operations
type StudentService interface {
	CreateStudent(ctx context.Context, email string, phoneNumber *string) (*models.Student, error)
	GetStudentByEmail(ctx context.Context, email string) (*models.Student, error)
	DeleteStudent(ctx context.Context, email string) (int64, error)
}

// studentServiceImpl implements the StudentService interface
type studentServiceImpl struct {
	studentRepo repositories.StudentRepository
}

// NewStudentService creates a new student service instance
func NewStudentService(studentRepo repositories.StudentRepository) StudentService {
	return &studentServiceImpl{
		studentRepo: studentRepo,
	}
}

// CreateStudent validates the email before anything reaches the store
func (s *studentServiceImpl) CreateStudent(ctx context.Context, email string, phoneNumber *string) (*models.Student, error) {
	email = strings.TrimSpace(email)
	if !validation.IsValidEmail(email) {
		return nil, apperrors.ErrInvalidEmail
	}

	if phoneNumber != nil {
		trimmed := strings.TrimSpace(*phoneNumber)
		if trimmed == "" {
			phoneNumber = nil
		} else if len(trimmed) > validation.PhoneMaxLength {
			return nil, fmt.Errorf("%w: phone_number must be at most %d characters", apperrors.ErrValidationFailed, validation.PhoneMaxLength)
		} else {
			phoneNumber = &trimmed
		}
	}

	return s.studentRepo.Create(ctx, email, phoneNumber)
}

// GetStudentByEmail retrieves a student by email
func (s *studentServiceImpl) GetStudentByEmail(ctx context.Context, email string) (*models.Student, error) {
	email, err := requireParam("email", email)
	if err != nil {
		return nil, err
	}
	return s.studentRepo.GetByEmail(ctx, email)
}

// DeleteStudent removes a student and, through the cascade, its enrollments
func (s *studentServiceImpl) DeleteStudent(ctx context.Context, email string) (int64, error) {
	email, err := requireParam("email", email)
	if err != nil {
		return 0, err
	}
	return s.studentRepo.DeleteByEmail(ctx, email)
}

// requireParam trims a lookup key and rejects it when blank.
func requireParam(name, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", apperrors.NewBadRequestError(name + " is required")
	}
	return value, nil
}
