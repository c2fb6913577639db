package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/registrar/internal/app/controllers"
)

// SetupRouter configures all application routes
func SetupRouter(
	router gin.IRouter,
	studentController *controllers.StudentController,
	courseController *controllers.CourseController,
	enrollmentController *controllers.EnrollmentController,
) {
	// Student routes, keyed by the email query parameter
	students := router.Group("/students")
	{
		students.GET("", studentController.GetStudent)
		students.POST("", studentController.CreateStudent)
		students.DELETE("", studentController.DeleteStudent)
	}

	// Course routes, keyed by the name query parameter
	courses := router.Group("/courses")
	{
		courses.GET("", courseController.GetCourse)
		courses.POST("", courseController.CreateCourse)
		courses.DELETE("", courseController.DeleteCourse)
	}

	enrollments := router.Group("/students-courses")
	{
		enrollments.POST("", enrollmentController.Enroll)
		enrollments.DELETE("", enrollmentController.Unenroll)
		enrollments.GET("/student", enrollmentController.CoursesForStudent)
		enrollments.GET("/course", enrollmentController.StudentsForCourse)
	}

	// Health check endpoint
	router.GET("/ping", controllers.Ping)
}
