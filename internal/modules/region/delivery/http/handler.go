package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lemuel.com/eduspaceadmin/internal/middleware"
	"lemuel.com/eduspaceadmin/internal/modules/region/dto"
	regionService "lemuel.com/eduspaceadmin/internal/modules/region/service"
	"lemuel.com/eduspaceadmin/pkg/response"
	"lemuel.com/eduspaceadmin/pkg/validator"
)

// RegionHandler serves the dependent lists forms load. Every endpoint answers
// 200; a failed list carries its own error field.
type RegionHandler struct {
	service regionService.RegionService
}

func NewRegionHandler(service regionService.RegionService) *RegionHandler {
	return &RegionHandler{service: service}
}

func (h *RegionHandler) Regions(c *gin.Context) {
	sess, err := middleware.GetSession(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.service.Regions(c.Request.Context(), sess))
}

func (h *RegionHandler) Classes(c *gin.Context) {
	sess, err := middleware.GetSession(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	regionID, err := response.ParamID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.service.ClassesByRegion(c.Request.Context(), sess, regionID))
}

func (h *RegionHandler) AvailableTeachers(c *gin.Context) {
	sess, err := middleware.GetSession(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.service.AvailableTeachers(c.Request.Context(), sess))
}

func (h *RegionHandler) AvailableUsers(c *gin.Context) {
	sess, err := middleware.GetSession(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var filter dto.AvailableUsersFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validator.Validate.Struct(filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	c.JSON(http.StatusOK, h.service.AvailableUsers(c.Request.Context(), sess, filter))
}

func (h *RegionHandler) FormOptions(c *gin.Context) {
	sess, err := middleware.GetSession(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var filter dto.FormOptionsFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.service.FormOptions(c.Request.Context(), sess, filter))
}
