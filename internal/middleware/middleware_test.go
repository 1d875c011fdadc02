package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newSessionRouter(t *testing.T, secret string) *gin.Engine {
	t.Helper()
	rl := NewInvalidAuthRateLimiter()
	t.Cleanup(rl.Stop)
	m := NewSessionMiddleware(session.NewTokenParser(secret), rl)

	r := gin.New()
	r.Use(m.Handle())
	r.GET("/whoami", func(c *gin.Context) {
		auth, ok := session.Auth(GetSession(c))
		c.JSON(200, gin.H{"authenticated": ok, "user": auth.UserID})
	})
	r.GET("/private", m.RequireAuth(), func(c *gin.Context) { c.Status(204) })
	return r
}

func do(r http.Handler, method, path string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSessionMiddleware_Anonymous(t *testing.T) {
	r := newSessionRouter(t, "")

	w := do(r, "GET", "/whoami", nil)
	assert.Equal(t, 200, w.Code)
	assert.JSONEq(t, `{"authenticated":false,"user":""}`, w.Body.String())

	w = do(r, "GET", "/private", nil)
	assert.Equal(t, 401, w.Code)
	assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
}

func TestSessionMiddleware_VerifiedToken(t *testing.T) {
	r := newSessionRouter(t, "s3cret")
	tok, err := session.IssueToken("s3cret", "u7")
	require.NoError(t, err)

	w := do(r, "GET", "/whoami", map[string]string{"Authorization": "Bearer " + tok})
	assert.Equal(t, 200, w.Code)
	assert.JSONEq(t, `{"authenticated":true,"user":"u7"}`, w.Body.String())

	w = do(r, "GET", "/private", map[string]string{"Authorization": "Bearer " + tok})
	assert.Equal(t, 204, w.Code)
}

func TestSessionMiddleware_InvalidTokenIsRateLimited(t *testing.T) {
	r := newSessionRouter(t, "s3cret")
	bad := map[string]string{"Authorization": "Bearer garbage"}

	for i := 0; i < 5; i++ {
		w := do(r, "GET", "/whoami", bad)
		require.Equal(t, 401, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_TOKEN")
	}
	w := do(r, "GET", "/whoami", bad)
	assert.Equal(t, 429, w.Code)
}

func TestSessionMiddleware_MalformedHeader(t *testing.T) {
	r := newSessionRouter(t, "")
	w := do(r, "GET", "/whoami", map[string]string{"Authorization": "Basic abc"})
	assert.Equal(t, 401, w.Code)
}

func TestRateLimiter_WindowResets(t *testing.T) {
	rl := NewInvalidAuthRateLimiter()
	defer rl.Stop()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	for i := 0; i < 5; i++ {
		assert.True(t, rl.Allow("1.2.3.4"))
	}
	assert.False(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.Allow("5.6.7.8"))

	now = now.Add(2 * time.Minute)
	assert.True(t, rl.Allow("1.2.3.4"))

	now = now.Add(2 * time.Minute)
	rl.prune()
	assert.Empty(t, rl.attempts)
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"shop.example.com", "localhost:3000"}))
	r.GET("/x", func(c *gin.Context) { c.Status(200) })

	w := do(r, "GET", "/x", map[string]string{"Origin": "https://shop.example.com:443"})
	assert.Equal(t, "https://shop.example.com:443", w.Header().Get("Access-Control-Allow-Origin"))

	w = do(r, "GET", "/x", map[string]string{"Referer": "http://localhost:3000/cart"})
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	w = do(r, "GET", "/x", map[string]string{"Origin": "https://evil.example.com"})
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	w = do(r, "OPTIONS", "/x", map[string]string{"Origin": "https://shop.example.com"})
	assert.Equal(t, http.StatusNoContent, w.Code)
}
