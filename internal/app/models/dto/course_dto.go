package dto

import "github.com/yigit/registrar/internal/app/models"

// CreateCourseRequest is the body of POST /courses
type CreateCourseRequest struct {
	Name        string  `json:"name" binding:"required,max=255" example:"algebra"`
	Description *string `json:"description,omitempty" example:"Linear algebra and matrices"`
}

// CourseQuery selects a course by name
type CourseQuery struct {
	Name string `form:"name" binding:"required"`
}

// CourseResponse is the public view of a course
type CourseResponse struct {
	ID          int64   `json:"id" example:"1"`
	Name        string  `json:"name" example:"algebra"`
	Description *string `json:"description,omitempty"`
}

// NewCourseResponse maps a model to its response
func NewCourseResponse(c *models.Course) CourseResponse {
	return CourseResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
	}
}
