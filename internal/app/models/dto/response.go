package dto

import "time"

// APIResponse is the envelope of every successful response
type APIResponse struct {
	Success   bool         `json:"success" example:"true"`
	Message   string       `json:"message,omitempty"`
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp" example:"2025-04-23T12:01:05.123Z"`
}

// NewAPIResponse wraps data in a success envelope
func NewAPIResponse(data interface{}) APIResponse {
	return APIResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// WithMessage adds a human readable message
func (r APIResponse) WithMessage(message string) APIResponse {
	r.Message = message
	return r
}

// SuccessResponse represents a plain status response
type SuccessResponse struct {
	Status  string `json:"status" example:"ok"`
	Message string `json:"message"`
}
