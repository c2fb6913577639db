package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/registrar/internal/app/models/dto"
)

// Recovery turns a handler panic into a 500 response.
func Recovery(lgr zerolog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		lgr.Error().
			Str("request_id", GetRequestID(c)).
			Str("path", c.Request.URL.Path).
			Interface("panic", recovered).
			Msg("Recovered from panic")

		detail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error").
			WithSeverity(dto.ErrorSeverityCritical)
		c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse(detail))
	})
}
