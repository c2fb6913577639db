package services_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/yigit/registrar/internal/app/models"
)

type mockStudentRepository struct{ mock.Mock }

func (m *mockStudentRepository) Create(ctx context.Context, email string, phoneNumber *string) (*models.Student, error) {
	args := m.Called(ctx, email, phoneNumber)
	student, _ := args.Get(0).(*models.Student)
	return student, args.Error(1)
}

func (m *mockStudentRepository) GetByEmail(ctx context.Context, email string) (*models.Student, error) {
	args := m.Called(ctx, email)
	student, _ := args.Get(0).(*models.Student)
	return student, args.Error(1)
}

func (m *mockStudentRepository) DeleteByEmail(ctx context.Context, email string) (int64, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(int64), args.Error(1)
}

type mockCourseRepository struct{ mock.Mock }

func (m *mockCourseRepository) Create(ctx context.Context, name string, description *string) (*models.Course, error) {
	args := m.Called(ctx, name, description)
	course, _ := args.Get(0).(*models.Course)
	return course, args.Error(1)
}

func (m *mockCourseRepository) GetByName(ctx context.Context, name string) (*models.Course, error) {
	args := m.Called(ctx, name)
	course, _ := args.Get(0).(*models.Course)
	return course, args.Error(1)
}

func (m *mockCourseRepository) DeleteByName(ctx context.Context, name string) (int64, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(int64), args.Error(1)
}

type mockEnrollmentRepository struct{ mock.Mock }

func (m *mockEnrollmentRepository) Enroll(ctx context.Context, studentEmail, courseName string) (*models.Enrollment, error) {
	args := m.Called(ctx, studentEmail, courseName)
	enrollment, _ := args.Get(0).(*models.Enrollment)
	return enrollment, args.Error(1)
}

func (m *mockEnrollmentRepository) Unenroll(ctx context.Context, studentEmail, courseName string) (int64, error) {
	args := m.Called(ctx, studentEmail, courseName)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockEnrollmentRepository) CoursesForStudent(ctx context.Context, studentEmail string) ([]*models.Course, error) {
	args := m.Called(ctx, studentEmail)
	courses, _ := args.Get(0).([]*models.Course)
	return courses, args.Error(1)
}

func (m *mockEnrollmentRepository) StudentsForCourse(ctx context.Context, courseName string) ([]*models.Student, error) {
	args := m.Called(ctx, courseName)
	students, _ := args.Get(0).([]*models.Student)
	return students, args.Error(1)
}
