package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/registrar/internal/app/models/dto"
	"github.com/yigit/registrar/internal/pkg/apperrors"
	"github.com/yigit/registrar/internal/pkg/logger"
)

// HandleAPIError maps an application error to its HTTP status and writes the
// standard error body. Internal details are logged, never returned.
func HandleAPIError(c *gin.Context, err error) {
	status, detail := classify(err)

	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Err(err).
		Str("request_id", GetRequestID(c)).
		Int("status", status).
		Str("path", c.Request.URL.Path).
		Msg("Request failed")

	c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail))
}

func classify(err error) (int, *dto.ErrorDetail) {
	switch {
	case errors.Is(err, apperrors.ErrResourceNotFound):
		return http.StatusNotFound, withReason(dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, publicMessage(err, "Resource not found")), err)
	case errors.Is(err, apperrors.ErrResourceAlreadyExists):
		return http.StatusConflict, withReason(dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, publicMessage(err, "Resource already exists")), err)
	case errors.Is(err, apperrors.ErrValidationFailed):
		return http.StatusBadRequest, withReason(dto.NewErrorDetail(dto.ErrorCodeValidationFailed, publicMessage(err, "Validation failed")), err)
	case errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest, withReason(dto.NewErrorDetail(dto.ErrorCodeBadRequest, publicMessage(err, "Bad request")), err)
	case errors.Is(err, apperrors.ErrServiceUnavailable):
		detail := dto.NewErrorDetail(dto.ErrorCodeServiceUnavailable, "Service temporarily unavailable, try again later").
			WithSeverity(dto.ErrorSeverityCritical)
		return http.StatusServiceUnavailable, withReason(detail, err)
	default:
		return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error").
			WithSeverity(dto.ErrorSeverityCritical)
	}
}

// publicMessage prefers the message of an attributed error, such as
// "student not found", over the generic fallback.
func publicMessage(err error, fallback string) string {
	var custom *apperrors.CustomError
	if errors.As(err, &custom) && custom.Message != "" {
		return custom.Message
	}
	if err != nil {
		return err.Error()
	}
	return fallback
}

func withReason(detail *dto.ErrorDetail, err error) *dto.ErrorDetail {
	var custom *apperrors.CustomError
	if errors.As(err, &custom) {
		detail.WithReason(custom.Code)
		if custom.Details != nil {
			detail.WithDetails(custom.Details)
		}
	}
	return detail
}
