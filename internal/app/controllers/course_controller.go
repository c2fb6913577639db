package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/registrar/internal/app/models/dto"
	"github.com/yigit/registrar/internal/app/services"
	"github.com/yigit/registrar/internal/middleware"
)

// CourseController handles course-related operations
type CourseController struct {
	courseService services.CourseService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService services.CourseService) *CourseController {
	return &CourseController{
		courseService: courseService,
	}
}

// CreateCourse handles course creation
// @Summary Create a new course
// @Description Creates a course identified by a unique name
// @Tags courses
// @Accept json
// @Produce json
// @Param request body dto.CreateCourseRequest true "Course information"
// @Success 201 {object} dto.APIResponse{data=dto.CourseResponse} "Course created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Course already exists"
// @Failure 503 {object} dto.ErrorResponse "Database temporarily unavailable"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	course, err := c.courseService.CreateCourse(ctx.Request.Context(), req.Name, req.Description)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(dto.NewCourseResponse(course)).
		WithMessage("course created"))
}

// GetCourse retrieves a course by name
// @Summary Get course details
// @Tags courses
// @Produce json
// @Param name query string true "Course name"
// @Success 200 {object} dto.APIResponse{data=dto.CourseResponse} "Course retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Missing name"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 503 {object} dto.ErrorResponse "Database temporarily unavailable"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	var query dto.CourseQuery
	if !middleware.BindQuery(ctx, &query) {
		return
	}

	course, err := c.courseService.GetCourseByName(ctx.Request.Context(), query.Name)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.NewCourseResponse(course)))
}

// DeleteCourse deletes a course and every enrollment in it
// @Summary Delete a course
// @Tags courses
// @Produce json
// @Param name query string true "Course name"
// @Success 200 {object} dto.APIResponse{data=dto.DeleteResponse} "Number of courses deleted"
// @Failure 400 {object} dto.ErrorResponse "Missing name"
// @Failure 503 {object} dto.ErrorResponse "Database temporarily unavailable"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	var query dto.CourseQuery
	if !middleware.BindQuery(ctx, &query) {
		return
	}

	deleted, err := c.courseService.DeleteCourse(ctx.Request.Context(), query.Name)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.DeleteResponse{Deleted: deleted}))
}
