package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lemuel.com/eduspaceadmin/internal/forms"
	"lemuel.com/eduspaceadmin/internal/middleware"
	"lemuel.com/eduspaceadmin/internal/modules/attachment/dto"
	attachmentService "lemuel.com/eduspaceadmin/internal/modules/attachment/service"
	"lemuel.com/eduspaceadmin/pkg/response"
)

type AttachmentHandler struct {
	service attachmentService.AttachmentService
}

func NewAttachmentHandler(service attachmentService.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{service: service}
}

func (h *AttachmentHandler) List(c *gin.Context) {
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

	attachments, err := h.service.List(c.Request.Context(), sess, sessionID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, attachments)
}

func (h *AttachmentHandler) Upload(c *gin.Context) {
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

	var input dto.AttachmentInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fh, _ := c.FormFile("file")
	file, closer, err := forms.OpenUpload(fh, "file")
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	defer closer.Close()

	attachment, err := h.service.Upload(c.Request.Context(), sess, sessionID, input, file)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, attachment)
}

func (h *AttachmentHandler) Delete(c *gin.Context) {
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

	if err := h.service.Delete(c.Request.Context(), sess, id); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "attachment deleted successfully"})
}
