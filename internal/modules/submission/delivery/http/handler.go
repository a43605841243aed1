package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lemuel.com/eduspaceadmin/internal/forms"
	"lemuel.com/eduspaceadmin/internal/middleware"
	"lemuel.com/eduspaceadmin/internal/modules/submission/dto"
	submissionService "lemuel.com/eduspaceadmin/internal/modules/submission/service"
	"lemuel.com/eduspaceadmin/pkg/response"
)

type SubmissionHandler struct {
	service submissionService.SubmissionService
}

func NewSubmissionHandler(service submissionService.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{service: service}
}

func (h *SubmissionHandler) List(c *gin.Context) {
	sess, err := middleware.GetSession(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	sessionID, err := response.ParamID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	submissions, err := h.service.List(c.Request.Context(), sess, sessionID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, submissions)
}

func (h *SubmissionHandler) Upload(c *gin.Context) {
	sess, err := middleware.GetSession(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	sessionID, err := response.ParamID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	fh, _ := c.FormFile("file")
	file, closer, err := forms.OpenUpload(fh, "file")
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	defer closer.Close()

	submission, err := h.service.Upload(c.Request.Context(), sess, sessionID, file)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, submission)
}

func (h *SubmissionHandler) Grade(c *gin.Context) {
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

	var input dto.GradeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	submission, err := h.service.Grade(c.Request.Context(), sess, id, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, submission)
}
