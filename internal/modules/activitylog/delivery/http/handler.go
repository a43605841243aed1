package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lemuel.com/eduspaceadmin/internal/middleware"
	"lemuel.com/eduspaceadmin/internal/modules/activitylog/dto"
	logService "lemuel.com/eduspaceadmin/internal/modules/activitylog/service"
	"lemuel.com/eduspaceadmin/pkg/response"
)

type LogHandler struct {
	service logService.LogService
}

func NewLogHandler(service logService.LogService) *LogHandler {
	return &LogHandler{service: service}
}

func (h *LogHandler) LoginLogs(c *gin.Context) {
	sess, err := middleware.GetSession(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var filter dto.LogFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	logs, err := h.service.LoginLogs(c.Request.Context(), sess, filter)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, logs)
}

func (h *LogHandler) ActivityLogs(c *gin.Context) {
	sess, err := middleware.GetSession(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var filter dto.LogFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	logs, err := h.service.ActivityLogs(c.Request.Context(), sess, filter)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, logs)
}
