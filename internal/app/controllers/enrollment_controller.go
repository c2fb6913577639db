package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yigit/registrar/internal/app/models/dto"
	"github.com/yigit/registrar/internal/app/services"
	"github.com/yigit/registrar/internal/middleware"
)

// EnrollmentController handles the student to course relation
type EnrollmentController struct {
	enrollmentService services.EnrollmentService
}

// NewEnrollmentController creates a new EnrollmentController
func NewEnrollmentController(enrollmentService services.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{
		enrollmentService: enrollmentService,
	}
}

// Enroll signs a student up for a course
// @Summary Enroll a student in a course
// @Description Both the student and the course must exist. A pair can be enrolled only once.
// @Tags enrollments
// @Accept json
// @Produce json
// @Param request body dto.EnrollmentRequest true "Student email and course name"
// @Success 200 {object} dto.APIResponse{data=dto.EnrollmentResponse} "Student enrolled"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Student or course not found"
// @Failure 409 {object} dto.ErrorResponse "Student already enrolled"
// @Failure 503 {object} dto.ErrorResponse "Database temporarily unavailable"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students-courses [post]
func (c *EnrollmentController) Enroll(ctx *gin.Context) {
	var req dto.EnrollmentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	enrollment, err := c.enrollmentService.Enroll(ctx.Request.Context(), req.StudentEmail, req.CourseName)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.EnrollmentResponse{
		StudentID:    enrollment.StudentID,
		CourseID:     enrollment.CourseID,
		StudentEmail: strings.TrimSpace(req.StudentEmail),
		CourseName:   strings.TrimSpace(req.CourseName),
	}).WithMessage("student sign up successful"))
}

// Unenroll removes a student from a course
// @Summary Remove a student from a course
// @Description Removing a pair that is not enrolled succeeds with removed=0
// @Tags enrollments
// @Accept json
// @Produce json
// @Param request body dto.EnrollmentRequest true "Student email and course name"
// @Success 200 {object} dto.APIResponse{data=dto.UnenrollResponse} "Enrollment removed"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Student or course not found"
// @Failure 503 {object} dto.ErrorResponse "Database temporarily unavailable"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students-courses [delete]
func (c *EnrollmentController) Unenroll(ctx *gin.Context) {
	var req dto.EnrollmentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	removed, err := c.enrollmentService.Unenroll(ctx.Request.Context(), req.StudentEmail, req.CourseName)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.UnenrollResponse{
		StudentEmail: strings.TrimSpace(req.StudentEmail),
		CourseName:   strings.TrimSpace(req.CourseName),
		Removed:      removed,
	}))
}

// CoursesForStudent lists the names of the courses a student is enrolled in
// @Summary List the courses of a student
// @Tags enrollments
// @Produce json
// @Param student_email query string true "Student email"
// @Success 200 {object} dto.APIResponse{data=[]string} "Course names, possibly empty"
// @Failure 400 {object} dto.ErrorResponse "Missing student_email"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 503 {object} dto.ErrorResponse "Database temporarily unavailable"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students-courses/student [get]
func (c *EnrollmentController) CoursesForStudent(ctx *gin.Context) {
	var query dto.StudentCoursesQuery
	if !middleware.BindQuery(ctx, &query) {
		return
	}

	names, err := c.enrollmentService.CourseNamesForStudent(ctx.Request.Context(), query.StudentEmail)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, listResponse(names))
}

// StudentsForCourse lists the emails of the students enrolled in a course
// @Summary List the students of a course
// @Tags enrollments
// @Produce json
// @Param course_name query string true "Course name"
// @Success 200 {object} dto.APIResponse{data=[]string} "Student emails, possibly empty"
// @Failure 400 {object} dto.ErrorResponse "Missing course_name"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 503 {object} dto.ErrorResponse "Database temporarily unavailable"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students-courses/course [get]
func (c *EnrollmentController) StudentsForCourse(ctx *gin.Context) {
	var query dto.CourseStudentsQuery
	if !middleware.BindQuery(ctx, &query) {
		return
	}

	emails, err := c.enrollmentService.StudentEmailsForCourse(ctx.Request.Context(), query.CourseName)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, listResponse(emails))
}

// listResponse renders an empty list as [] rather than null.
func listResponse(items []string) dto.APIResponse {
	if items == nil {
		items = []string{}
	}
	return dto.NewAPIResponse(items)
}
