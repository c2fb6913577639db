package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yigit/registrar/internal/app/models"
	"github.com/yigit/registrar/internal/app/services"
	"github.com/yigit/registrar/internal/pkg/apperrors"
)

func TestEnrollmentService(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("enroll passes trimmed keys", func(t *testing.T) {
		t.Parallel()
		repo := &mockEnrollmentRepository{}
		repo.On("Enroll", ctx, "a@x.com", "algebra").Return(&models.Enrollment{StudentID: 1, CourseID: 2}, nil)

		enrollment, err := services.NewEnrollmentService(repo).Enroll(ctx, " a@x.com", "algebra ")
		require.NoError(t, err)
		assert.EqualValues(t, 2, enrollment.CourseID)
		repo.AssertExpectations(t)
	})

	t.Run("missing keys are bad client data", func(t *testing.T) {
		t.Parallel()
		repo := &mockEnrollmentRepository{}
		svc := services.NewEnrollmentService(repo)

		_, err := svc.Enroll(ctx, "", "algebra")
		assert.True(t, apperrors.IsBadClientData(err))
		_, err = svc.Unenroll(ctx, "a@x.com", " ")
		assert.True(t, apperrors.IsBadClientData(err))
		_, err = svc.CourseNamesForStudent(ctx, "")
		assert.True(t, apperrors.IsBadClientData(err))
		_, err = svc.StudentEmailsForCourse(ctx, "")
		assert.True(t, apperrors.IsBadClientData(err))

		repo.AssertNotCalled(t, "Enroll", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("lists are mapped to names and stay non-nil", func(t *testing.T) {
		t.Parallel()
		repo := &mockEnrollmentRepository{}
		repo.On("CoursesForStudent", ctx, "a@x.com").Return([]*models.Course{{ID: 1, Name: "algebra"}}, nil)
		repo.On("StudentsForCourse", ctx, "biology").Return([]*models.Student{}, nil)
		svc := services.NewEnrollmentService(repo)

		names, err := svc.CourseNamesForStudent(ctx, "a@x.com")
		require.NoError(t, err)
		assert.Equal(t, []string{"algebra"}, names)

		emails, err := svc.StudentEmailsForCourse(ctx, "biology")
		require.NoError(t, err)
		assert.NotNil(t, emails)
		assert.Empty(t, emails)
	})

	t.Run("repository errors are passed through", func(t *testing.T) {
		t.Parallel()
		repo := &mockEnrollmentRepository{}
		repo.On("Unenroll", ctx, "ghost@x.com", "algebra").Return(int64(0), apperrors.ErrStudentNotFound)
		repo.On("CoursesForStudent", ctx, "a@x.com").Return(nil, apperrors.ErrConnectionUnavailable)
		svc := services.NewEnrollmentService(repo)

		_, err := svc.Unenroll(ctx, "ghost@x.com", "algebra")
		assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)

		_, err = svc.CourseNamesForStudent(ctx, "a@x.com")
		assert.ErrorIs(t, err, apperrors.ErrServiceUnavailable)
	})
}
