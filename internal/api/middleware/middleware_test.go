package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"recipe-suggester/internal/core/auth"
	"recipe-suggester/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	common.InitNopLogger()
}

type fakeParser struct{}

func (fakeParser) ParseToken(raw string) (string, error) {
	if raw == "good" {
		return "42", nil
	}
	return "", auth.ErrInvalidToken.Wrap(errors.New("bad token"))
}

func whoAmI(c *gin.Context) {
	id, ok := UserID(c)
	c.JSON(http.StatusOK, gin.H{"user_id": id, "authenticated": ok})
}

func serve(r *gin.Engine, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestOptionalAuth(t *testing.T) {
	r := gin.New()
	r.GET("/me", OptionalAuth(fakeParser{}), whoAmI)

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"valid", "Bearer good", `"authenticated":true`},
		{"invalid", "Bearer bad", `"authenticated":false`},
		{"missing", "", `"authenticated":false`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(r, http.MethodGet, "/me", "", map[string]string{"Authorization": tt.header})
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), tt.want)
		})
	}
}

func TestRequireAuth(t *testing.T) {
	r := gin.New()
	r.GET("/me", RequireAuth(fakeParser{}), whoAmI)

	w := serve(r, http.MethodGet, "/me", "", map[string]string{"Authorization": "Bearer good"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":"42"`)

	w = serve(r, http.MethodGet, "/me", "", map[string]string{"Authorization": "Bearer bad"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Invalid token"}`, w.Body.String())

	w = serve(r, http.MethodGet, "/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRateLimiter(t *testing.T) {
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(2, time.Second)
	rl.now = func() time.Time { return clock }

	assert.True(t, rl.Allow("a"))
	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))
	assert.True(t, rl.Allow("b"), "buckets are per client")

	clock = clock.Add(250 * time.Millisecond)
	assert.False(t, rl.Allow("a"), "half a token is not enough")
	clock = clock.Add(250 * time.Millisecond)
	assert.True(t, rl.Allow("a"))
}

func TestRateLimiter_PrunesIdleBuckets(t *testing.T) {
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, time.Second)
	rl.now = func() time.Time { return clock }

	assert.True(t, rl.Allow("a"))
	assert.True(t, rl.Allow("b"))
	assert.Len(t, rl.buckets, 2)

	clock = clock.Add(2 * time.Second)
	assert.True(t, rl.Allow("c"))
	assert.Len(t, rl.buckets, 1)
}

func TestRateLimitMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RateLimit(NewRateLimiter(1, time.Minute)))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/", "", nil).Code)
	w := serve(r, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
}

func TestDeduplication(t *testing.T) {
	d := NewDeduplicator(time.Second)
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	d.now = func() time.Time { return clock }

	r := gin.New()
	r.Use(Deduplication(d))
	r.POST("/gen", func(c *gin.Context) {
		body, _ := c.GetRawData()
		c.String(http.StatusOK, string(body))
	})
	r.GET("/gen", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, http.MethodPost, "/gen", `{"a":1}`, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"a":1}`, w.Body.String(), "body is restored")

	w = serve(r, http.MethodPost, "/gen", `{"a":1}`, nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"error":"Request too frequent","message":"an identical request was received within the last 1s"}`, w.Body.String())
	assert.Equal(t, http.StatusOK, serve(r, http.MethodPost, "/gen", `{"a":2}`, nil).Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodPost, "/gen", `{"a":1}`, map[string]string{"Authorization": "Bearer x"}).Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/gen", "", nil).Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/gen", "", nil).Code)

	clock = clock.Add(2 * time.Second)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodPost, "/gen", `{"a":1}`, nil).Code)
}

func TestBodySizeLimit(t *testing.T) {
	r := gin.New()
	r.Use(BodySizeLimit(8))
	r.POST("/", func(c *gin.Context) {
		if _, err := c.GetRawData(); err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.Status(http.StatusOK)
	})

	assert.Equal(t, http.StatusOK, serve(r, http.MethodPost, "/", "small", nil).Code)
	w := serve(r, http.MethodPost, "/", "this body is too large", nil)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Contains(t, w.Body.String(), "Request body too large")
}

func TestDeduplication_BodyTooLarge(t *testing.T) {
	r := gin.New()
	r.Use(BodySizeLimit(8), Deduplication(NewDeduplicator(time.Second)))
	r.POST("/gen", func(c *gin.Context) { c.Status(http.StatusOK) })

	// 未帶 Content-Length 時由 MaxBytesReader 擋下
	req := httptest.NewRequest(http.MethodPost, "/gen", strings.NewReader("this body is too large"))
	req.ContentLength = -1
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.JSONEq(t, `{"error":"Request body too large"}`, w.Body.String())
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery())
	r.GET("/", func(c *gin.Context) { panic("boom") })

	w := serve(r, http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal server error","code":"INTERNAL_ERROR"}`, w.Body.String())
}
