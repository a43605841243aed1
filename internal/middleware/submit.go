package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lemuel.com/eduspaceadmin/internal/guard"
)

type SubmitMiddleware struct {
	guard  *guard.Guard
	ttl    time.Duration
	logger *zap.Logger
}

func NewSubmitMiddleware(g *guard.Guard, ttl time.Duration, logger *zap.Logger) *SubmitMiddleware {
	return &SubmitMiddleware{
		guard:  g,
		ttl:    ttl,
		logger: logger,
	}
}

// Once rejects a second submission of action from the same session while the
// first one is still in flight. The lock is released when the handler returns.
func (m *SubmitMiddleware) Once(action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := GetSession(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
			c.Abort()
			return
		}

		ctx := c.Request.Context()
		acquired, err := m.guard.Acquire(ctx, s.ID, action, m.ttl)
		if err != nil {
			// A broken lock store must not block writes.
			m.logger.Warn("submit guard unavailable", zap.String("action", action), zap.Error(err))
			c.Next()
			return
		}
		if !acquired {
			ttl, _ := m.guard.TTL(ctx, s.ID, action)
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "duplicate submission in progress",
				"retry_after": int(ttl.Seconds()),
			})
			c.Abort()
			return
		}
		defer func() {
			if err := m.guard.Release(ctx, s.ID, action); err != nil {
				m.logger.Warn("failed to release submit guard", zap.String("action", action), zap.Error(err))
			}
		}()

		c.Next()
	}
}
