package models

// Enrollment is one row of the 'students_courses' join table. The pair is
// the primary key.
type Enrollment struct {
	StudentID int64 `json:"student_id" db:"student_id" example:"1"`
	CourseID  int64 `json:"course_id" db:"course_id" example:"1"`
}
