package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lemuel.com/eduspaceadmin/internal/middleware"
	"lemuel.com/eduspaceadmin/internal/modules/classsession/dto"
	sessionService "lemuel.com/eduspaceadmin/internal/modules/classsession/service"
	"lemuel.com/eduspaceadmin/pkg/response"
)

type SessionHandler struct {
	service sessionService.SessionService
}

func NewSessionHandler(service sessionService.SessionService) *SessionHandler {
	return &SessionHandler{service: service}
}

func (h *SessionHandler) List(c *gin.Context) {
	sess, err := middleware.GetSession(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var filter dto.SessionFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sessions, err := h.service.List(c.Request.Context(), sess, filter)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, sessions)
}

func (h *SessionHandler) NextSessionNo(c *gin.Context) {
	sess, err := middleware.GetSession(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	subjectID, err := response.ParamID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	next, err := h.service.NextSessionNo(c.Request.Context(), sess, subjectID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"session_no": next})
}

func (h *SessionHandler) Create(c *gin.Context) {
	sess, err := middleware.GetSession(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.SessionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cs, err := h.service.Create(c.Request.Context(), sess, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, cs)
}

func (h *SessionHandler) Update(c *gin.Context) {
	sess, err := middleware.GetSession(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	id, err := response.ParamID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.SessionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cs, err := h.service.Update(c.Request.Context(), sess, id, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, cs)
}

func (h *SessionHandler) Delete(c *gin.Context) {
	sess, err := middleware.GetSession(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	id, err := response.ParamID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), sess, id, response.Confirmed(c)); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "session deleted successfully"})
}
