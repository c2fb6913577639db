package services

import (
	"context"

	"github.com/yigit/registrar/internal/app/models"
	"github.com/yigit/registrar/internal/app/repositories"
)

// EnrollmentService defines the interface for enrollment operations
type EnrollmentService interface {
	Enroll(ctx context.Context, studentEmail, courseName string) (*models.Enrollment, error)
	Unenroll(ctx context.Context, studentEmail, courseName string) (int64, error)
	CourseNamesForStudent(ctx context.Context, studentEmail string) ([]string, error)
	StudentEmailsForCourse(ctx context.Context, courseName string) ([]string, error)
}

type enrollmentServiceImpl struct {
	enrollmentRepo repositories.EnrollmentRepository
}

// NewEnrollmentService creates a new enrollment service instance
func NewEnrollmentService(enrollmentRepo repositories.EnrollmentRepository) EnrollmentService {
	return &enrollmentServiceImpl{
		enrollmentRepo: enrollmentRepo,
	}
}

// Enroll signs a student up for a course
func (s *enrollmentServiceImpl) Enroll(ctx context.Context, studentEmail, courseName string) (*models.Enrollment, error) {
	studentEmail, courseName, err := enrollmentKeys(studentEmail, courseName)
	if err != nil {
		return nil, err
	}
	return s.enrollmentRepo.Enroll(ctx, studentEmail, courseName)
}

// Unenroll removes a sign-up; removing a missing one is not an error
func (s *enrollmentServiceImpl) Unenroll(ctx context.Context, studentEmail, courseName string) (int64, error) {
	studentEmail, courseName, err := enrollmentKeys(studentEmail, courseName)
	if err != nil {
		return 0, err
	}
	return s.enrollmentRepo.Unenroll(ctx, studentEmail, courseName)
}

// CourseNamesForStudent lists the names of a student's courses
func (s *enrollmentServiceImpl) CourseNamesForStudent(ctx context.Context, studentEmail string) ([]string, error) {
	studentEmail, err := requireParam("student_email", studentEmail)
	if err != nil {
		return nil, err
	}

	courses, err := s.enrollmentRepo.CoursesForStudent(ctx, studentEmail)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(courses))
	for _, c := range courses {
		names = append(names, c.Name)
	}
	return names, nil
}

// StudentEmailsForCourse lists the emails of a course's students
func (s *enrollmentServiceImpl) StudentEmailsForCourse(ctx context.Context, courseName string) ([]string, error) {
	courseName, err := requireParam("course_name", courseName)
	if err != nil {
		return nil, err
	}

	students, err := s.enrollmentRepo.StudentsForCourse(ctx, courseName)
	if err != nil {
		return nil, err
	}

	emails := make([]string, 0, len(students))
	for _, st := range students {
		emails = append(emails, st.Email)
	}
	return emails, nil
}

func enrollmentKeys(studentEmail, courseName string) (string, string, error) {
	studentEmail, err := requireParam("student_email", studentEmail)
	if err != nil {
		return "", "", err
	}
	courseName, err = requireParam("course_name", courseName)
	if err != nil {
		return "", "", err
	}
	return studentEmail, courseName, nil
}
