package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/registrar/internal/app/models/dto"
	"github.com/yigit/registrar/internal/app/services"
	"github.com/yigit/registrar/internal/middleware"
)

// StudentController handles student-related operations
type StudentController struct {
	studentService services.StudentService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.StudentService) *StudentController {
	return &StudentController{
		studentService: studentService,
	}
}

// CreateStudent handles student creation
// @Summary Create a new student
// @Description Creates a student identified by a unique email address
// @Tags students
// @Accept json
// @Produce json
// @Param request body dto.CreateStudentRequest true "Student information"
// @Success 201 {object} dto.APIResponse{data=dto.StudentResponse} "Student created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or email"
// @Failure 409 {object} dto.ErrorResponse "Student already exists"
// @Failure 503 {object} dto.ErrorResponse "Database temporarily unavailable"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	student, err := c.studentService.CreateStudent(ctx.Request.Context(), req.Email, req.PhoneNumber)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(dto.NewStudentResponse(student)).
		WithMessage("student created"))
}

// GetStudent retrieves a student by email
// @Summary Get student details
// @Description Retrieves the student with the given email
// @Tags students
// @Produce json
// @Param email query string true "Student email"
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse} "Student retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Missing email"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 503 {object} dto.ErrorResponse "Database temporarily unavailable"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students [get]
func (c *StudentController) GetStudent(ctx *gin.Context) {
	var query dto.StudentQuery
	if !middleware.BindQuery(ctx, &query) {
		return
	}

	student, err := c.studentService.GetStudentByEmail(ctx.Request.Context(), query.Email)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.NewStudentResponse(student)))
}

// DeleteStudent deletes a student and all of their enrollments
// @Summary Delete a student
// @Description Deletes the student with the given email; their enrollments are removed with them
// @Tags students
// @Produce json
// @Param email query string true "Student email"
// @Success 200 {object} dto.APIResponse{data=dto.DeleteResponse} "Number of students deleted"
// @Failure 400 {object} dto.ErrorResponse "Missing email"
// @Failure 503 {object} dto.ErrorResponse "Database temporarily unavailable"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students [delete]
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	var query dto.StudentQuery
	if !middleware.BindQuery(ctx, &query) {
		return
	}

	deleted, err := c.studentService.DeleteStudent(ctx.Request.Context(), query.Email)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.DeleteResponse{Deleted: deleted}))
}
