package services

import "github.com/yigit/registrar/internal/app/repositories"

// Services groups the application services handed to the controllers
type Services struct {
	StudentService    StudentService
	CourseService     CourseService
	EnrollmentService EnrollmentService
}

// NewServices builds every service over one set of repositories
func NewServices(repos *repositories.Repositories) *Services {
	return &Services{
		StudentService:    NewStudentService(repos.StudentRepository),
		CourseService:     NewCourseService(repos.CourseRepository),
		EnrollmentService: NewEnrollmentService(repos.EnrollmentRepository),
	}
}
