package repositories

import (
	"context"

	"github.com/yigit/registrar/internal/app/models"
)

// StudentRepository stores students keyed by their unique email.
type StudentRepository interface {
	// Create fails with apperrors.ErrStudentAlreadyExists on a duplicate email.
	Create(ctx context.Context, email string, phoneNumber *string) (*models.Student, error)
	// GetByEmail fails with apperrors.ErrStudentNotFound.
	GetByEmail(ctx context.Context, email string) (*models.Student, error)
	// DeleteByEmail returns the number of rows removed, 0 or 1.
	DeleteByEmail(ctx context.Context, email string) (int64, error)
}

// CourseRepository stores courses keyed by their unique name.
type CourseRepository interface {
	// Create fails with apperrors.ErrCourseAlreadyExists on a duplicate name.
	Create(ctx context.Context, name string, description *string) (*models.Course, error)
	// GetByName fails with apperrors.ErrCourseNotFound.
	GetByName(ctx context.Context, name string) (*models.Course, error)
	// DeleteByName returns the number of rows removed, 0 or 1.
	DeleteByName(ctx context.Context, name string) (int64, error)
}

// EnrollmentRepository manages the student/course relation. Every operation
// resolves the student first, then the course, and fails with the matching
// NotFound error before touching the relation.
type EnrollmentRepository interface {
	// Enroll fails with apperrors.ErrAlreadyEnrolled when the pair exists.
	Enroll(ctx context.Context, studentEmail, courseName string) (*models.Enrollment, error)
	// Unenroll returns 0 when the pair was not enrolled, 1 when it was removed.
	Unenroll(ctx context.Context, studentEmail, courseName string) (int64, error)
	// CoursesForStudent returns an empty, non-nil slice when there are none.
	CoursesForStudent(ctx context.Context, studentEmail string) ([]*models.Course, error)
	// StudentsForCourse returns an empty, non-nil slice when there are none.
	StudentsForCourse(ctx context.Context, courseName string) ([]*models.Student, error)
}

// Repositories holds all the repository instances
type Repositories struct {
	StudentRepository    StudentRepository
	CourseRepository     CourseRepository
	EnrollmentRepository EnrollmentRepository
}
