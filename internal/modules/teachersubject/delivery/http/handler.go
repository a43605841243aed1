package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lemuel.com/eduspaceadmin/internal/middleware"
	"lemuel.com/eduspaceadmin/internal/modules/teachersubject/dto"
	teacherSubjectService "lemuel.com/eduspaceadmin/internal/modules/teachersubject/service"
	"lemuel.com/eduspaceadmin/pkg/response"
)

type TeacherSubjectHandler struct {
	service teacherSubjectService.TeacherSubjectService
}

func NewTeacherSubjectHandler(service teacherSubjectService.TeacherSubjectService) *TeacherSubjectHandler {
	return &TeacherSubjectHandler{service: service}
}

func (h *TeacherSubjectHandler) List(c *gin.Context) {
	sess, err := middleware.GetSession(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var filter dto.AssignmentFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	assignments, err := h.service.List(c.Request.Context(), sess, filter)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, assignments)
}

func (h *TeacherSubjectHandler) Assign(c *gin.Context) {
	sess, err := middleware.GetSession(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.AssignInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	assignment, err := h.service.Assign(c.Request.Context(), sess, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, assignment)
}

func (h *TeacherSubjectHandler) Unassign(c *gin.Context) {
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

	if err := h.service.Unassign(c.Request.Context(), sess, id); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "subject unassigned"})
}
