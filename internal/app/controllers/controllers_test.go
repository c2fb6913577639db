package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/registrar/internal/app/repositories/sqlstore"
	"github.com/yigit/registrar/internal/bootstrap"
	"github.com/yigit/registrar/internal/testutil"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Reason  string `json:"reason"`
		Message string `json:"message"`
	} `json:"error"`
}

type apiClient struct {
	t      *testing.T
	router *gin.Engine
}

func newAPI(t *testing.T) *apiClient {
	t.Helper()

	cfg := testutil.SQLiteConfig(t)
	repos := sqlstore.NewRepositories(testutil.OpenSQLite(t, cfg))
	deps := bootstrap.BuildDependencies(repos, zerolog.Nop())

	return &apiClient{t: t, router: bootstrap.SetupRouter(cfg, deps, zerolog.Nop())}
}

func (a *apiClient) do(method, path string, query url.Values, body any) (int, envelope) {
	a.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	target := path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var env envelope
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func (a *apiClient) list(path, key, value string) (int, []string) {
	a.t.Helper()

	code, env := a.do(http.MethodGet, path, url.Values{key: {value}}, nil)
	if code != http.StatusOK {
		return code, nil
	}
	var items []string
	require.NoError(a.t, json.Unmarshal(env.Data, &items))
	return code, items
}

func enrollment(email, course string) map[string]string {
	return map[string]string{"student_email": email, "course_name": course}
}

func TestEnrollmentRoundTrip(t *testing.T) {
	api := newAPI(t)

	code, _ := api.do(http.MethodPost, "/students", nil, map[string]string{"email": "a@x.com"})
	require.Equal(t, http.StatusCreated, code)
	code, _ = api.do(http.MethodPost, "/courses", nil, map[string]string{"name": "algebra"})
	require.Equal(t, http.StatusCreated, code)

	code, env := api.do(http.MethodPost, "/students-courses", nil, enrollment("a@x.com", "algebra"))
	require.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)
	assert.Equal(t, "student sign up successful", env.Message)

	code, courses := api.list("/students-courses/student", "student_email", "a@x.com")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []string{"algebra"}, courses)

	code, students := api.list("/students-courses/course", "course_name", "algebra")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []string{"a@x.com"}, students)

	code, env = api.do(http.MethodDelete, "/students-courses", nil, enrollment("a@x.com", "algebra"))
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"student_email":"a@x.com","course_name":"algebra","removed":1}`, string(env.Data))

	code, courses = api.list("/students-courses/student", "student_email", "a@x.com")
	require.Equal(t, http.StatusOK, code)
	assert.NotNil(t, courses)
	assert.Empty(t, courses)

	code, env = api.do(http.MethodDelete, "/students-courses", nil, enrollment("a@x.com", "algebra"))
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"student_email":"a@x.com","course_name":"algebra","removed":0}`, string(env.Data))
}

func TestStudentEndpoints(t *testing.T) {
	api := newAPI(t)

	code, env := api.do(http.MethodPost, "/students", nil, map[string]string{"email": "a@x.com", "phone_number": " 555-0100 "})
	require.Equal(t, http.StatusCreated, code)
	var created struct {
		ID          int64   `json:"id"`
		Email       string  `json:"email"`
		PhoneNumber *string `json:"phone_number"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Positive(t, created.ID)
	require.NotNil(t, created.PhoneNumber)
	assert.Equal(t, "555-0100", *created.PhoneNumber)

	code, env = api.do(http.MethodPost, "/students", nil, map[string]string{"email": "a@x.com"})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "STUDENT_ALREADY_EXISTS", env.Error.Reason)

	code, env = api.do(http.MethodPost, "/students", nil, map[string]string{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "INVALID_EMAIL", env.Error.Reason)

	code, env = api.do(http.MethodPost, "/students", nil, map[string]string{"phone_number": "1"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "VAL_001", env.Error.Code)

	code, _ = api.do(http.MethodGet, "/students", url.Values{"email": {"a@x.com"}}, nil)
	assert.Equal(t, http.StatusOK, code)

	code, env = api.do(http.MethodGet, "/students", url.Values{"email": {"b@x.com"}}, nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "STUDENT_NOT_FOUND", env.Error.Reason)

	code, _ = api.do(http.MethodGet, "/students", nil, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = api.do(http.MethodDelete, "/students", url.Values{"email": {"a@x.com"}}, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"deleted":1}`, string(env.Data))

	code, env = api.do(http.MethodDelete, "/students", url.Values{"email": {"a@x.com"}}, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"deleted":0}`, string(env.Data))
}

func TestCourseEndpoints(t *testing.T) {
	api := newAPI(t)

	code, env := api.do(http.MethodPost, "/courses", nil, map[string]string{"name": "algebra", "description": "linear"})
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "course created", env.Message)

	code, env = api.do(http.MethodPost, "/courses", nil, map[string]string{"name": "algebra"})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "COURSE_ALREADY_EXISTS", env.Error.Reason)

	code, env = api.do(http.MethodGet, "/courses", url.Values{"name": {"algebra"}}, nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"id":1,"name":"algebra","description":"linear"}`, string(env.Data))

	code, env = api.do(http.MethodGet, "/courses", url.Values{"name": {"history"}}, nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "COURSE_NOT_FOUND", env.Error.Reason)

	code, env = api.do(http.MethodDelete, "/courses", url.Values{"name": {"algebra"}}, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"deleted":1}`, string(env.Data))
}

func TestEnrollmentErrors(t *testing.T) {
	api := newAPI(t)

	_, _ = api.do(http.MethodPost, "/students", nil, map[string]string{"email": "a@x.com"})
	_, _ = api.do(http.MethodPost, "/courses", nil, map[string]string{"name": "algebra"})

	code, env := api.do(http.MethodPost, "/students-courses", nil, enrollment("nobody@x.com", "algebra"))
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "STUDENT_NOT_FOUND", env.Error.Reason)

	code, env = api.do(http.MethodPost, "/students-courses", nil, enrollment("a@x.com", "history"))
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "COURSE_NOT_FOUND", env.Error.Reason)

	code, _ = api.do(http.MethodPost, "/students-courses", nil, map[string]string{"student_email": "a@x.com"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = api.do(http.MethodPost, "/students-courses", nil, enrollment("a@x.com", "algebra"))
	require.Equal(t, http.StatusOK, code)

	code, env = api.do(http.MethodPost, "/students-courses", nil, enrollment("a@x.com", "algebra"))
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "ALREADY_ENROLLED", env.Error.Reason)

	code, _ = api.list("/students-courses/student", "student_email", "nobody@x.com")
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = api.list("/students-courses/course", "course_name", "history")
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = api.do(http.MethodDelete, "/students-courses", nil, enrollment("a@x.com", "history"))
	assert.Equal(t, http.StatusNotFound, code)
}

func TestDeletingCourseRemovesItsEnrollments(t *testing.T) {
	api := newAPI(t)

	_, _ = api.do(http.MethodPost, "/students", nil, map[string]string{"email": "a@x.com"})
	_, _ = api.do(http.MethodPost, "/courses", nil, map[string]string{"name": "algebra"})
	_, _ = api.do(http.MethodPost, "/courses", nil, map[string]string{"name": "history"})
	_, _ = api.do(http.MethodPost, "/students-courses", nil, enrollment("a@x.com", "algebra"))
	_, _ = api.do(http.MethodPost, "/students-courses", nil, enrollment("a@x.com", "history"))

	code, _ := api.do(http.MethodDelete, "/courses", url.Values{"name": {"algebra"}}, nil)
	require.Equal(t, http.StatusOK, code)

	_, courses := api.list("/students-courses/student", "student_email", "a@x.com")
	assert.Equal(t, []string{"history"}, courses)
}

func TestPing(t *testing.T) {
	api := newAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	api.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","message":"pong"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestEnrollmentEchoesTrimmedKeys(t *testing.T) {
	api := newAPI(t)

	_, _ = api.do(http.MethodPost, "/students", nil, map[string]string{"email": "a@x.com"})
	_, _ = api.do(http.MethodPost, "/courses", nil, map[string]string{"name": "algebra"})

	code, env := api.do(http.MethodPost, "/students-courses", nil, enrollment(" a@x.com ", "\talgebra "))
	require.Equal(t, http.StatusOK, code)
	var enrolled struct {
		StudentEmail string `json:"student_email"`
		CourseName   string `json:"course_name"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &enrolled))
	assert.Equal(t, "a@x.com", enrolled.StudentEmail)
	assert.Equal(t, "algebra", enrolled.CourseName)

	code, env = api.do(http.MethodDelete, "/students-courses", nil, enrollment(" a@x.com", "algebra "))
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"student_email":"a@x.com","course_name":"algebra","removed":1}`, string(env.Data))
}
