package models

import "time"

// Student defines the student model based on the 'students' table
type Student struct {
	ID          int64      `json:"id" db:"id" example:"1"`
	Email       string     `json:"email" db:"email" example:"a@x.com"`
	PhoneNumber *string    `json:"phone_number,omitempty" db:"phone_number" example:"+90 555 000 00 00"` // Nullable
	CreatedAt   *time.Time `json:"created_at,omitempty" db:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty" db:"updated_at"`
}
