package dto

import (
	"time"

	"github.com/yigit/registrar/internal/app/models"
)

// CreateStudentRequest is the body of POST /students
type CreateStudentRequest struct {
	Email       string  `json:"email" binding:"required,max=255" example:"a@x.com"`
	PhoneNumber *string `json:"phone_number,omitempty" binding:"omitempty,max=32" example:"+90 555 000 00 00"`
}

// StudentQuery selects a student by email
type StudentQuery struct {
	Email string `form:"email" binding:"required"`
}

// StudentResponse is the public view of a student
type StudentResponse struct {
	ID          int64      `json:"id" example:"1"`
	Email       string     `json:"email" example:"a@x.com"`
	PhoneNumber *string    `json:"phone_number,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// NewStudentResponse maps a model to its response
func NewStudentResponse(s *models.Student) StudentResponse {
	return StudentResponse{
		ID:          s.ID,
		Email:       s.Email,
		PhoneNumber: s.PhoneNumber,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// DeleteResponse reports how many records a delete removed
type DeleteResponse struct {
	Deleted int64 `json:"deleted" example:"1"`
}
