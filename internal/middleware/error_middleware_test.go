package middleware_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/registrar/internal/app/models/dto"
	"github.com/yigit/registrar/internal/middleware"
	"github.com/yigit/registrar/internal/pkg/apperrors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serveError(t *testing.T, err error) (*httptest.ResponseRecorder, dto.ErrorResponse) {
	t.Helper()

	router := gin.New()
	router.Use(middleware.RequestID())
	router.GET("/", func(c *gin.Context) { middleware.HandleAPIError(c, err) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestHandleAPIErrorStatusMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		status  int
		reason  string
		message string
	}{
		{name: "student not found", err: apperrors.ErrStudentNotFound, status: http.StatusNotFound, reason: "STUDENT_NOT_FOUND", message: "student not found"},
		{name: "course not found", err: fmt.Errorf("lookup: %w", apperrors.ErrCourseNotFound), status: http.StatusNotFound, reason: "COURSE_NOT_FOUND", message: "course not found"},
		{name: "already enrolled", err: apperrors.ErrAlreadyEnrolled, status: http.StatusConflict, reason: "ALREADY_ENROLLED"},
		{name: "duplicate student", err: apperrors.ErrStudentAlreadyExists, status: http.StatusConflict, reason: "STUDENT_ALREADY_EXISTS"},
		{name: "invalid email", err: apperrors.ErrInvalidEmail, status: http.StatusBadRequest, reason: "INVALID_EMAIL"},
		{name: "bad request", err: apperrors.NewBadRequestError("email is required"), status: http.StatusBadRequest, message: "email is required"},
		{name: "pool exhausted", err: fmt.Errorf("%w: context deadline exceeded", apperrors.ErrConnectionUnavailable), status: http.StatusServiceUnavailable, reason: "DB_POOL_EXHAUSTED"},
		{name: "unknown", err: errors.New("pq: relation does not exist"), status: http.StatusInternalServerError, message: "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w, body := serveError(t, tt.err)

			assert.Equal(t, tt.status, w.Code)
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			if tt.reason != "" {
				assert.Equal(t, tt.reason, body.Error.Reason)
			}
			if tt.message != "" {
				assert.Equal(t, tt.message, body.Error.Message)
			}
			assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
		})
	}
}

func TestInternalErrorsAreNotLeaked(t *testing.T) {
	t.Parallel()

	w, body := serveError(t, errors.New("password=secret"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "secret")
	assert.Equal(t, dto.ErrorCodeInternalServer, body.Error.Code)
}

func TestRecovery(t *testing.T) {
	t.Parallel()

	router := gin.New()
	router.Use(middleware.Recovery(zerologNop()))
	router.GET("/panic", func(c *gin.Context) { panic("boom") })
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}
