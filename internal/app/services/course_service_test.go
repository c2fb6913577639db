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

func TestCreateCourse(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("blank name is rejected", func(t *testing.T) {
		t.Parallel()
		repo := &mockCourseRepository{}

		_, err := services.NewCourseService(repo).CreateCourse(ctx, "   ", nil)
		assert.ErrorIs(t, err, apperrors.ErrInvalidCourseName)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("name is trimmed and blank description dropped", func(t *testing.T) {
		t.Parallel()
		repo := &mockCourseRepository{}
		repo.On("Create", ctx, "algebra", (*string)(nil)).Return(&models.Course{ID: 3, Name: "algebra"}, nil)

		empty := ""
		course, err := services.NewCourseService(repo).CreateCourse(ctx, " algebra ", &empty)
		require.NoError(t, err)
		assert.EqualValues(t, 3, course.ID)
		repo.AssertExpectations(t)
	})

	t.Run("duplicate is passed through", func(t *testing.T) {
		t.Parallel()
		repo := &mockCourseRepository{}
		repo.On("Create", ctx, "algebra", (*string)(nil)).Return(nil, apperrors.ErrCourseAlreadyExists)

		_, err := services.NewCourseService(repo).CreateCourse(ctx, "algebra", nil)
		assert.True(t, apperrors.IsUniqueViolation(err))
	})
}

func TestGetCourseByName(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := &mockCourseRepository{}
	repo.On("GetByName", ctx, "history").Return(nil, apperrors.ErrCourseNotFound)

	svc := services.NewCourseService(repo)

	_, err := svc.GetCourseByName(ctx, "history")
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)

	_, err = svc.GetCourseByName(ctx, "")
	assert.True(t, apperrors.IsBadClientData(err))
}
