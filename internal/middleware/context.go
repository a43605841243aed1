package middleware

import (
	"github.com/gin-gonic/gin"

	"lemuel.com/eduspaceadmin/internal/session"
	"lemuel.com/eduspaceadmin/pkg/apperror"
)

const sessionContextKey = "console_session"

// SetSession stores the authenticated session on the request context.
func SetSession(c *gin.Context, s *session.Session) {
	c.Set(sessionContextKey, s)
}

// GetSession retrieves the authenticated session from the context
func GetSession(c *gin.Context) (*session.Session, error) {
	v, exists := c.Get(sessionContextKey)
	if !exists {
		return nil, apperror.ErrUnauthorized
	}
	s, ok := v.(*session.Session)
	if !ok || !s.IsAuthenticated() {
		return nil, apperror.ErrUnauthorized
	}
	return s, nil
}
