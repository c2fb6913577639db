package models

// Course defines the course model based on the 'courses' table
type Course struct {
	ID          int64   `json:"id" db:"id" example:"1"`
	Name        string  `json:"name" db:"name" example:"algebra"`
	Description *string `json:"description,omitempty" db:"description"` // Nullable
}
