package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yigit/registrar/internal/app/models"
	"github.com/yigit/registrar/internal/db"
	"github.com/yigit/registrar/internal/pkg/apperrors"
	"github.com/yigit/registrar/internal/pkg/dberrors"
	"github.com/yigit/registrar/internal/pkg/logger"
)

// EnrollmentRepository handles the students_courses relation
type EnrollmentRepository struct {
	db       *db.PostgresDB
	sb       squirrel.StatementBuilderType
	students *StudentRepository
	courses  *CourseRepository
}

// NewEnrollmentRepository creates a new EnrollmentRepository
func NewEnrollmentRepository(database *db.PostgresDB, students *StudentRepository, courses *CourseRepository) *EnrollmentRepository {
	return &EnrollmentRepository{
		db:       database,
		sb:       statementBuilder(),
		students: students,
		courses:  courses,
	}
}

// resolve looks up the student, then the course, share-locking both rows.
func (r *EnrollmentRepository) resolve(ctx context.Context, tx pgx.Tx, studentEmail, courseName string) (*models.Student, *models.Course, error) {
	student, err := r.students.findByEmail(ctx, tx, studentEmail, shareLock)
	if err != nil {
		return nil, nil, err
	}
	course, err := r.courses.findByName(ctx, tx, courseName, shareLock)
	if err != nil {
		return nil, nil, err
	}
	return student, course, nil
}

// Enroll links a student to a course
func (r *EnrollmentRepository) Enroll(ctx context.Context, studentEmail, courseName string) (*models.Enrollment, error) {
	var enrollment *models.Enrollment

	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		student, course, err := r.resolve(ctx, tx, studentEmail, courseName)
		if err != nil {
			return err
		}

		query, args, err := r.sb.Insert("students_courses").
			Columns("student_id", "course_id").
			Values(student.ID, course.ID).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build enroll query: %w", err)
		}

		if _, err := tx.Exec(ctx, query, args...); err != nil {
			switch {
			case dberrors.IsDuplicateConstraintError(err, studentsCoursesPkey):
				logger.Warn().Str("email", studentEmail).Str("course", courseName).Msg("Student already enrolled")
				return apperrors.ErrAlreadyEnrolled
			case dberrors.IsForeignKeyViolation(err):
				return apperrors.NewResourceNotFoundError("student or course was removed during enrollment")
			}
			return fmt.Errorf("error enrolling student: %w", err)
		}

		enrollment = &models.Enrollment{StudentID: student.ID, CourseID: course.ID}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("studentID", enrollment.StudentID).Int64("courseID", enrollment.CourseID).Msg("Student enrolled")
	return enrollment, nil
}

// Unenroll removes the link between a student and a course
func (r *EnrollmentRepository) Unenroll(ctx context.Context, studentEmail, courseName string) (int64, error) {
	var removed int64

	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		student, course, err := r.resolve(ctx, tx, studentEmail, courseName)
		if err != nil {
			return err
		}

		query, args, err := r.sb.Delete("students_courses").
			Where(squirrel.Eq{"student_id": student.ID, "course_id": course.ID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build unenroll query: %w", err)
		}

		tag, err := tx.Exec(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("error unenrolling student: %w", err)
		}
		removed = tag.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, err
	}

	logger.Info().Str("email", studentEmail).Str("course", courseName).Int64("removed", removed).Msg("Student unenrolled")
	return removed, nil
}

// CoursesForStudent lists the courses a student is enrolled in
func (r *EnrollmentRepository) CoursesForStudent(ctx context.Context, studentEmail string) ([]*models.Course, error) {
	courses := make([]*models.Course, 0)

	err := r.db.WithConnection(ctx, func(ctx context.Context, conn *pgxpool.Conn) error {
		student, err := r.students.findByEmail(ctx, conn, studentEmail, "")
		if err != nil {
			return err
		}

		query, args, err := r.sb.Select("c.id", "c.name", "c.description").
			From("courses c").
			Join("students_courses sc ON sc.course_id = c.id").
			Where(squirrel.Eq{"sc.student_id": student.ID}).
			OrderBy("c.id").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build courses for student query: %w", err)
		}

		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("error listing courses for student: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			course, err := scanCourse(rows)
			if err != nil {
				return fmt.Errorf("error scanning course row: %w", err)
			}
			courses = append(courses, course)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return courses, nil
}

// StudentsForCourse lists the students enrolled in a course
func (r *EnrollmentRepository) StudentsForCourse(ctx context.Context, courseName string) ([]*models.Student, error) {
	students := make([]*models.Student, 0)

	err := r.db.WithConnection(ctx, func(ctx context.Context, conn *pgxpool.Conn) error {
		course, err := r.courses.findByName(ctx, conn, courseName, "")
		if err != nil {
			return err
		}

		query, args, err := r.sb.Select("s.id", "s.email", "s.phone_number", "s.created_at", "s.updated_at").
			From("students s").
			Join("students_courses sc ON sc.student_id = s.id").
			Where(squirrel.Eq{"sc.course_id": course.ID}).
			OrderBy("s.id").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build students for course query: %w", err)
		}

		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("error listing students for course: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			student, err := scanStudent(rows)
			if err != nil {
				return fmt.Errorf("error scanning student row: %w", err)
			}
			students = append(students, student)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return students, nil
}
