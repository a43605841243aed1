package handler

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"lemuel.com/eduspaceadmin/internal/middleware"
	"lemuel.com/eduspaceadmin/internal/modules/auth/dto"
	authService "lemuel.com/eduspaceadmin/internal/modules/auth/service"
	"lemuel.com/eduspaceadmin/pkg/response"
)

type AuthHandler struct {
	service authService.AuthService
}

func NewAuthHandler(service authService.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input dto.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.service.Login(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	cookie := sessions.Default(c)
	cookie.Set(middleware.SessionIDKey, res.SessionID)
	if err := cookie.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to set session cookie"})
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	sid := middleware.SessionID(c)
	if err := h.service.Logout(c.Request.Context(), sid); err != nil {
		response.ResponseError(c, err)
		return
	}

	cookie := sessions.Default(c)
	cookie.Clear()
	cookie.Options(sessions.Options{Path: "/", MaxAge: -1})
	_ = cookie.Save()

	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	sess, err := middleware.GetSession(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	res, err := h.service.Me(c.Request.Context(), sess)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
