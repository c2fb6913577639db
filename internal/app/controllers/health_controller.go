package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/registrar/internal/app/models/dto"
)

// Ping reports that the service is up
// @Summary Liveness check
// @Tags health
// @Produce json
// @Success 200 {object} dto.SuccessResponse
// @Router /ping [get]
func Ping(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Status: "ok", Message: "pong"})
}
