package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"lemuel.com/eduspaceadmin/internal/entity"
	"lemuel.com/eduspaceadmin/internal/guard"
	"lemuel.com/eduspaceadmin/internal/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func withSession(s *session.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		SetSession(c, s)
		c.Next()
	}
}

func TestSubmitMiddleware_RejectsConcurrentDuplicate(t *testing.T) {
	s := &session.Session{ID: "sess-1", Token: "tok", User: &entity.User{ID: 1, Role: entity.RoleAdmin}}
	submit := NewSubmitMiddleware(guard.New(nil), 10*time.Second, zap.NewNop())

	entered := make(chan struct{})
	release := make(chan struct{})
	calls := 0

	r := gin.New()
	r.POST("/students", withSession(s), submit.Once("create_student"), func(c *gin.Context) {
		calls++
		if calls == 1 {
			close(entered)
			<-release
		}
		c.Status(http.StatusCreated)
	})

	first := make(chan int)
	go func() {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/students", nil))
		first <- w.Code
	}()
	<-entered

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/students", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "duplicate submission in progress")

	close(release)
	assert.Equal(t, http.StatusCreated, <-first)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/students", nil))
	assert.Equal(t, http.StatusCreated, w.Code, "the lock is released once the first request finishes")
}

func TestSubmitMiddleware_RequiresSession(t *testing.T) {
	submit := NewSubmitMiddleware(guard.New(nil), time.Second, zap.NewNop())
	r := gin.New()
	r.POST("/x", submit.Once("x"), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/x", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDKey)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	_, err := uuid.Parse(w.Header().Get(RequestIDHeader))
	require.NoError(t, err)
	assert.Equal(t, w.Header().Get(RequestIDHeader), w.Body.String())

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, id)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, id, w.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "<script>")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.NotEqual(t, "<script>", w.Header().Get(RequestIDHeader))
}

func authRouter(store session.Store) *gin.Engine {
	auth := NewAuthMiddleware(store, zap.NewNop())

	r := gin.New()
	r.Use(sessions.Sessions(CookieName, cookie.NewStore([]byte("test-secret"))))
	r.GET("/me", auth.RequireAuth(), func(c *gin.Context) {
		s, _ := GetSession(c)
		c.JSON(http.StatusOK, gin.H{"id": s.User.ID})
	})
	r.GET("/promotion", auth.RequireAuth(), auth.RequireCapability(entity.CapRunPromotion), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	store := session.NewMemoryStore()
	teacher := session.New("tok", &entity.User{ID: 5, Role: entity.RoleTeacher}, time.Hour)
	require.NoError(t, store.Save(context.Background(), teacher))
	admin := session.New("tok2", &entity.User{ID: 1, Role: entity.RoleAdmin}, time.Hour)
	require.NoError(t, store.Save(context.Background(), admin))

	r := authRouter(store)
	do := func(path, sid string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if sid != "" {
			req.Header.Set(SessionHeader, sid)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusUnauthorized, do("/me", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do("/me", "unknown").Code)

	w := do("/me", teacher.ID)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":5}`, w.Body.String())

	w = do("/promotion", teacher.ID)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "run_promotion access required")

	assert.Equal(t, http.StatusOK, do("/promotion", admin.ID).Code)
}

func TestAuthMiddleware_ExpiredSession(t *testing.T) {
	store := session.NewMemoryStore()
	s := session.New("tok", &entity.User{ID: 5, Role: entity.RoleTeacher}, time.Hour)
	s.ExpiresAt = time.Now().Add(-time.Minute)
	require.NoError(t, store.Save(context.Background(), s))

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(SessionHeader, s.ID)
	w := httptest.NewRecorder()
	authRouter(store).ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
