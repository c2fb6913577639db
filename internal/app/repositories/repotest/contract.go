// Package repotest holds the behaviour every repositories.Repositories
// implementation must show. Backend packages run it from their tests.
package repotest

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/registrar/internal/app/models"
	"github.com/yigit/registrar/internal/app/repositories"
	"github.com/yigit/registrar/internal/pkg/apperrors"
)

// OrphanEnrollmentsQuery counts enrollment rows whose student or course no
// longer exists. It is plain SQL shared by every dialect.
const OrphanEnrollmentsQuery = `SELECT COUNT(*) FROM students_courses sc
	LEFT JOIN students s ON s.id = sc.student_id
	LEFT JOIN courses c ON c.id = sc.course_id
	WHERE s.id IS NULL OR c.id IS NULL`

// Backend is one store under test.
type Backend struct {
	Repos *repositories.Repositories
	// CountOrphans runs OrphanEnrollmentsQuery against the store.
	CountOrphans func(ctx context.Context) (int, error)
}

// Factory returns a backend over an empty, migrated database.
type Factory func(t *testing.T) Backend

// Run executes the whole suite against backends built by newBackend.
func Run(t *testing.T, newBackend Factory) {
	newRepos := func(t *testing.T) *repositories.Repositories { return newBackend(t).Repos }

	t.Run("students", func(t *testing.T) { testStudents(t, newRepos(t)) })
	t.Run("courses", func(t *testing.T) { testCourses(t, newRepos(t)) })
	t.Run("enroll and unenroll", func(t *testing.T) { testEnrollUnenroll(t, newRepos(t)) })
	t.Run("unknown parents", func(t *testing.T) { testUnknownParents(t, newRepos(t)) })
	t.Run("listings", func(t *testing.T) { testListings(t, newRepos(t)) })
	t.Run("delete cascades", func(t *testing.T) { testDeleteCascades(t, newRepos(t)) })
	t.Run("concurrent duplicate enroll", func(t *testing.T) { testConcurrentEnroll(t, newRepos(t)) })
	t.Run("enroll racing student delete", func(t *testing.T) { testEnrollVsDelete(t, newBackend(t)) })
}

func strPtr(s string) *string { return &s }

func testStudents(t *testing.T, repos *repositories.Repositories) {
	ctx := context.Background()
	students := repos.StudentRepository

	created, err := students.Create(ctx, "a@x.com", strPtr("555-0100"))
	require.NoError(t, err)
	assert.Positive(t, created.ID)
	assert.Equal(t, "a@x.com", created.Email)
	require.NotNil(t, created.PhoneNumber)
	assert.Equal(t, "555-0100", *created.PhoneNumber)
	assert.NotNil(t, created.CreatedAt)

	_, err = students.Create(ctx, "a@x.com", nil)
	assert.ErrorIs(t, err, apperrors.ErrStudentAlreadyExists)
	assert.True(t, apperrors.IsUniqueViolation(err))

	got, err := students.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	noPhone, err := students.Create(ctx, "b@x.com", nil)
	require.NoError(t, err)
	assert.Nil(t, noPhone.PhoneNumber)

	_, err = students.GetByEmail(ctx, "nobody@x.com")
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
	assert.True(t, apperrors.IsNotFound(err))

	removed, err := students.DeleteByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)

	removed, err = students.DeleteByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.EqualValues(t, 0, removed)
}

func testCourses(t *testing.T, repos *repositories.Repositories) {
	ctx := context.Background()
	courses := repos.CourseRepository

	created, err := courses.Create(ctx, "algebra", strPtr("matrices"))
	require.NoError(t, err)
	assert.Equal(t, "algebra", created.Name)
	require.NotNil(t, created.Description)
	assert.Equal(t, "matrices", *created.Description)

	_, err = courses.Create(ctx, "algebra", nil)
	assert.ErrorIs(t, err, apperrors.ErrCourseAlreadyExists)

	got, err := courses.GetByName(ctx, "algebra")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = courses.GetByName(ctx, "history")
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)

	removed, err := courses.DeleteByName(ctx, "algebra")
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)
}

func seed(t *testing.T, repos *repositories.Repositories, emails, courses []string) {
	t.Helper()
	ctx := context.Background()
	for _, e := range emails {
		_, err := repos.StudentRepository.Create(ctx, e, nil)
		require.NoError(t, err)
	}
	for _, c := range courses {
		_, err := repos.CourseRepository.Create(ctx, c, nil)
		require.NoError(t, err)
	}
}

func courseNames(courses []*models.Course) []string {
	names := make([]string, 0, len(courses))
	for _, c := range courses {
		names = append(names, c.Name)
	}
	return names
}

func studentEmails(students []*models.Student) []string {
	emails := make([]string, 0, len(students))
	for _, s := range students {
		emails = append(emails, s.Email)
	}
	return emails
}

func testEnrollUnenroll(t *testing.T, repos *repositories.Repositories) {
	ctx := context.Background()
	seed(t, repos, []string{"a@x.com"}, []string{"algebra"})
	enrollments := repos.EnrollmentRepository

	enrollment, err := enrollments.Enroll(ctx, "a@x.com", "algebra")
	require.NoError(t, err)
	assert.Positive(t, enrollment.StudentID)
	assert.Positive(t, enrollment.CourseID)

	courses, err := enrollments.CoursesForStudent(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"algebra"}, courseNames(courses))

	_, err = enrollments.Enroll(ctx, "a@x.com", "algebra")
	assert.ErrorIs(t, err, apperrors.ErrAlreadyEnrolled)
	assert.True(t, apperrors.IsUniqueViolation(err))

	removed, err := enrollments.Unenroll(ctx, "a@x.com", "algebra")
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)

	courses, err = enrollments.CoursesForStudent(ctx, "a@x.com")
	require.NoError(t, err)
	assert.NotNil(t, courses)
	assert.Empty(t, courses)

	removed, err = enrollments.Unenroll(ctx, "a@x.com", "algebra")
	require.NoError(t, err)
	assert.EqualValues(t, 0, removed)

	_, err = enrollments.Enroll(ctx, "a@x.com", "algebra")
	assert.NoError(t, err)
}

func testUnknownParents(t *testing.T, repos *repositories.Repositories) {
	ctx := context.Background()
	seed(t, repos, []string{"a@x.com"}, []string{"algebra"})
	enrollments := repos.EnrollmentRepository

	_, err := enrollments.Enroll(ctx, "ghost@x.com", "algebra")
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)

	_, err = enrollments.Enroll(ctx, "a@x.com", "history")
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)

	// the student is checked first
	_, err = enrollments.Enroll(ctx, "ghost@x.com", "history")
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)

	_, err = enrollments.Unenroll(ctx, "ghost@x.com", "algebra")
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)

	_, err = enrollments.Unenroll(ctx, "a@x.com", "history")
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)

	_, err = enrollments.CoursesForStudent(ctx, "ghost@x.com")
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)

	_, err = enrollments.StudentsForCourse(ctx, "history")
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)

	students, err := enrollments.StudentsForCourse(ctx, "algebra")
	require.NoError(t, err)
	assert.Empty(t, students, "failed enrollments must not create rows")
}

func testListings(t *testing.T, repos *repositories.Repositories) {
	ctx := context.Background()
	seed(t, repos, []string{"a@x.com", "b@x.com", "c@x.com"}, []string{"algebra", "biology"})
	enrollments := repos.EnrollmentRepository

	for _, pair := range [][2]string{
		{"c@x.com", "algebra"},
		{"a@x.com", "algebra"},
		{"a@x.com", "biology"},
	} {
		_, err := enrollments.Enroll(ctx, pair[0], pair[1])
		require.NoError(t, err)
	}

	students, err := enrollments.StudentsForCourse(ctx, "algebra")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a@x.com", "c@x.com"}, studentEmails(students))

	courses, err := enrollments.CoursesForStudent(ctx, "a@x.com")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"algebra", "biology"}, courseNames(courses))

	courses, err = enrollments.CoursesForStudent(ctx, "b@x.com")
	require.NoError(t, err)
	assert.NotNil(t, courses)
	assert.Empty(t, courses)
}

func testDeleteCascades(t *testing.T, repos *repositories.Repositories) {
	ctx := context.Background()
	seed(t, repos, []string{"a@x.com", "b@x.com"}, []string{"algebra"})
	enrollments := repos.EnrollmentRepository

	_, err := enrollments.Enroll(ctx, "a@x.com", "algebra")
	require.NoError(t, err)
	_, err = enrollments.Enroll(ctx, "b@x.com", "algebra")
	require.NoError(t, err)

	_, err = repos.StudentRepository.DeleteByEmail(ctx, "a@x.com")
	require.NoError(t, err)

	students, err := enrollments.StudentsForCourse(ctx, "algebra")
	require.NoError(t, err)
	assert.Equal(t, []string{"b@x.com"}, studentEmails(students))

	_, err = enrollments.Enroll(ctx, "a@x.com", "algebra")
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func testConcurrentEnroll(t *testing.T, repos *repositories.Repositories) {
	ctx := context.Background()
	seed(t, repos, []string{"a@x.com"}, []string{"algebra"})

	const attempts = 8
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		ok   int
		dups int
		errs []error
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repos.EnrollmentRepository.Enroll(ctx, "a@x.com", "algebra")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case apperrors.IsUniqueViolation(err):
				dups++
			default:
				errs = append(errs, err)
			}
		}()
	}
	wg.Wait()

	assert.Empty(t, errs)
	assert.Equal(t, 1, ok)
	assert.Equal(t, attempts-1, dups)
}

// testEnrollVsDelete enrolls one student into many courses while the student
// is deleted. Every enroll either lands before the delete, and is then
// removed by the cascade, or fails with NotFound. No row may outlive its
// student.
func testEnrollVsDelete(t *testing.T, backend Backend) {
	ctx := context.Background()
	repos := backend.Repos

	const (
		rounds  = 5
		courses = 20
	)

	names := make([]string, courses)
	for i := range names {
		names[i] = fmt.Sprintf("course-%02d", i)
	}
	seed(t, repos, nil, names)

	for round := 0; round < rounds; round++ {
		email := fmt.Sprintf("racer%d@x.com", round)
		seed(t, repos, []string{email}, nil)

		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			errs    []error
			removed int64
			delErr  error
		)

		start := make(chan struct{})
		for _, name := range names {
			wg.Add(1)
			go func(name string) {
				defer wg.Done()
				<-start
				if _, err := repos.EnrollmentRepository.Enroll(ctx, email, name); err != nil {
					mu.Lock()
					errs = append(errs, err)
					mu.Unlock()
				}
			}(name)
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			removed, delErr = repos.StudentRepository.DeleteByEmail(ctx, email)
		}()
		close(start)
		wg.Wait()

		require.NoError(t, delErr)
		assert.EqualValues(t, 1, removed)
		for _, err := range errs {
			assert.True(t, apperrors.IsNotFound(err), "round %d: unexpected error %v", round, err)
		}

		orphans, err := backend.CountOrphans(ctx)
		require.NoError(t, err)
		assert.Zero(t, orphans, "round %d left enrollments without a student", round)

		for _, name := range names {
			students, err := repos.EnrollmentRepository.StudentsForCourse(ctx, name)
			require.NoError(t, err)
			assert.NotContains(t, studentEmails(students), email)
		}
	}
}
