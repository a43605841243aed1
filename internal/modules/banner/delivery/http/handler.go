package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lemuel.com/eduspaceadmin/internal/forms"
	"lemuel.com/eduspaceadmin/internal/middleware"
	"lemuel.com/eduspaceadmin/internal/modules/banner/dto"
	bannerService "lemuel.com/eduspaceadmin/internal/modules/banner/service"
	"lemuel.com/eduspaceadmin/pkg/response"
)

type BannerHandler struct {
	service bannerService.BannerService
}

func NewBannerHandler(service bannerService.BannerService) *BannerHandler {
	return &BannerHandler{service: service}
}

func (h *BannerHandler) List(c *gin.Context) {
	sess, err := middleware.GetSession(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	banners, err := h.service.List(c.Request.Context(), sess)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, banners)
}

func (h *BannerHandler) Create(c *gin.Context) {
	sess, err := middleware.GetSession(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.BannerInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fh, _ := c.FormFile("image")
	image, closer, err := forms.OpenUpload(fh, "image")
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	defer closer.Close()

	banner, err := h.service.Create(c.Request.Context(), sess, input, image)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, banner)
}

func (h *BannerHandler) Update(c *gin.Context) {
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

	var input dto.BannerInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fh, _ := c.FormFile("image")
	image, closer, err := forms.OpenUpload(fh, "image")
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	defer closer.Close()

	banner, err := h.service.Update(c.Request.Context(), sess, id, input, image)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, banner)
}

func (h *BannerHandler) Delete(c *gin.Context) {
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

	c.JSON(http.StatusOK, gin.H{"message": "banner deleted successfully"})
}
