package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lemuel.com/eduspaceadmin/internal/middleware"
	"lemuel.com/eduspaceadmin/internal/modules/class/dto"
	classService "lemuel.com/eduspaceadmin/internal/modules/class/service"
	"lemuel.com/eduspaceadmin/pkg/response"
)

type ClassHandler struct {
	service classService.ClassService
}

func NewClassHandler(service classService.ClassService) *ClassHandler {
	return &ClassHandler{service: service}
}

func (h *ClassHandler) List(c *gin.Context) {
	sess, err := middleware.GetSession(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var filter dto.ClassFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	classes, err := h.service.List(c.Request.Context(), sess, filter)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, classes)
}

func (h *ClassHandler) Get(c *gin.Context) {
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

	class, err := h.service.Get(c.Request.Context(), sess, id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, class)
}

func (h *ClassHandler) Create(c *gin.Context) {
	sess, err := middleware.GetSession(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.ClassInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	class, err := h.service.Create(c.Request.Context(), sess, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, class)
}

func (h *ClassHandler) Update(c *gin.Context) {
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

	var input dto.ClassInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	class, err := h.service.Update(c.Request.Context(), sess, id, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, class)
}

func (h *ClassHandler) Delete(c *gin.Context) {
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

	c.JSON(http.StatusOK, gin.H{"message": "class deleted successfully"})
}
