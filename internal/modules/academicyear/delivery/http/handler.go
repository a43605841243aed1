package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lemuel.com/eduspaceadmin/internal/entity"
	"lemuel.com/eduspaceadmin/internal/middleware"
	"lemuel.com/eduspaceadmin/internal/modules/academicyear/dto"
	academicYearService "lemuel.com/eduspaceadmin/internal/modules/academicyear/service"
	"lemuel.com/eduspaceadmin/pkg/response"
)

type AcademicYearHandler struct {
	service academicYearService.AcademicYearService
}

func NewAcademicYearHandler(service academicYearService.AcademicYearService) *AcademicYearHandler {
	return &AcademicYearHandler{service: service}
}

// GetContext returns the active year, the derived placement and the navigation.
func (h *AcademicYearHandler) GetContext(c *gin.Context) {
	sess, err := middleware.GetSession(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	yc, err := h.service.Context(c.Request.Context(), sess)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":       sess.User,
		"context":    yc.View(),
		"navigation": entity.NavigationFor(sess.User.Role),
	})
}

func (h *AcademicYearHandler) SelectYear(c *gin.Context) {
	sess, err := middleware.GetSession(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.SelectYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	yc, err := h.service.SelectYear(c.Request.Context(), sess, academicYearService.YearParam(req.YearID))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"context": yc.View()})
}

func (h *AcademicYearHandler) List(c *gin.Context) {
	sess, err := middleware.GetSession(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	years, err := h.service.List(c.Request.Context(), sess)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, years)
}

func (h *AcademicYearHandler) Create(c *gin.Context) {
	sess, err := middleware.GetSession(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.AcademicYearInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	year, err := h.service.Create(c.Request.Context(), sess, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, year)
}

func (h *AcademicYearHandler) Update(c *gin.Context) {
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

	var input dto.AcademicYearInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	year, err := h.service.Update(c.Request.Context(), sess, id, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, year)
}

func (h *AcademicYearHandler) Delete(c *gin.Context) {
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

	c.JSON(http.StatusOK, gin.H{"message": "academic year deleted successfully"})
}

func (h *AcademicYearHandler) SetCurrent(c *gin.Context) {
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

	year, err := h.service.SetCurrent(c.Request.Context(), sess, id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, year)
}

func (h *AcademicYearHandler) Snapshot(c *gin.Context) {
	sess, err := middleware.GetSession(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.SnapshotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.service.Snapshot(c.Request.Context(), sess, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
