package dto

// EnrollmentRequest is the body of POST and DELETE /students-courses
type EnrollmentRequest struct {
	StudentEmail string `json:"student_email" binding:"required" example:"a@x.com"`
	CourseName   string `json:"course_name" binding:"required" example:"algebra"`
}

// StudentCoursesQuery selects the courses of one student
type StudentCoursesQuery struct {
	StudentEmail string `form:"student_email" binding:"required"`
}

// CourseStudentsQuery selects the students of one course
type CourseStudentsQuery struct {
	CourseName string `form:"course_name" binding:"required"`
}

// EnrollmentResponse confirms an enrollment
type EnrollmentResponse struct {
	StudentID    int64  `json:"student_id" example:"1"`
	CourseID     int64  `json:"course_id" example:"1"`
	StudentEmail string `json:"student_email" example:"a@x.com"`
	CourseName   string `json:"course_name" example:"algebra"`
}

// UnenrollResponse confirms a removal; Removed is 0 when no enrollment existed
type UnenrollResponse struct {
	StudentEmail string `json:"student_email" example:"a@x.com"`
	CourseName   string `json:"course_name" example:"algebra"`
	Removed      int64  `json:"removed" example:"1"`
}
