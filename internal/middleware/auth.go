package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lemuel.com/eduspaceadmin/internal/entity"
	"lemuel.com/eduspaceadmin/internal/session"
)

const (
	CookieName   = "lemuel_console"
	SessionIDKey = "sid"
	// SessionHeader lets non-browser clients present the session id directly.
	SessionHeader = "X-Console-Session"
)

type AuthMiddleware struct {
	store  session.Store
	logger *zap.Logger
}

func NewAuthMiddleware(store session.Store, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		store:  store,
		logger: logger,
	}
}

// SessionID reads the session id from the signed cookie, then from the header.
func SessionID(c *gin.Context) string {
	if sid, ok := sessions.Default(c).Get(SessionIDKey).(string); ok && sid != "" {
		return sid
	}
	return strings.TrimSpace(c.GetHeader(SessionHeader))
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := SessionID(c)
		if sid == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			c.Abort()
			return
		}

		s, err := m.store.Get(c.Request.Context(), sid)
		if err != nil {
			if !errors.Is(err, session.ErrNotFound) {
				m.logger.Error("failed to load session", zap.Error(err))
			}
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session"})
			c.Abort()
			return
		}
		if !s.IsAuthenticated() {
			_ = m.store.Delete(c.Request.Context(), sid)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session"})
			c.Abort()
			return
		}

		SetSession(c, s)
		c.Next()
	}
}

func (m *AuthMiddleware) RequireCapability(capability entity.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := GetSession(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
			c.Abort()
			return
		}

		if !entity.Can(s.User.Role, capability) {
			c.JSON(http.StatusForbidden, gin.H{"error": capability.String() + " access required"})
			c.Abort()
			return
		}

		c.Next()
	}
}
