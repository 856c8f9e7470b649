package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/wyfcoding/storefront/pkg/ratelimit"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type staticParser map[string]uint

func (p staticParser) ParseToken(token string) (uint, error) {
	if id, ok := p[token]; ok {
		return id, nil
	}
	return 0, errors.New("bad token")
}

func newAuthRouter() *gin.Engine {
	r := gin.New()
	r.GET("/me", RequireAuth(staticParser{"good": 7}), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": UserID(c)})
	})
	return r
}

func TestRequireAuth(t *testing.T) {
	r := newAuthRouter()

	tests := []struct {
		name   string
		header string
		code   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Token good", http.StatusUnauthorized},
		{"invalid token", "Bearer nope", http.StatusUnauthorized},
		{"valid token", "Bearer good", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}

type fakeLimiter struct {
	res *ratelimit.Result
	err error
}

func (f fakeLimiter) Allow(context.Context, string, ratelimit.Limit) (*ratelimit.Result, error) {
	return f.res, f.err
}

func TestRateLimitMiddleware(t *testing.T) {
	serve := func(l ratelimit.RateLimiter) int {
		r := gin.New()
		r.Use(RateLimitMiddleware(l, ratelimit.Limit{Rate: 1}))
		r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, serve(fakeLimiter{res: &ratelimit.Result{Allowed: true}}))
	assert.Equal(t, http.StatusTooManyRequests, serve(fakeLimiter{res: &ratelimit.Result{Allowed: false}}))
	assert.Equal(t, http.StatusOK, serve(fakeLimiter{err: errors.New("redis down")}))
}

func TestCORSPreflight(t *testing.T) {
	r := gin.New()
	r.Use(GinCORSMiddleware([]string{"http://localhost:5500"}))
	r.POST("/api/cart", func(c *gin.Context) { c.Status(http.StatusCreated) })

	req := httptest.NewRequest(http.MethodOptions, "/api/cart", nil)
	req.Header.Set("Origin", "http://localhost:5500")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5500", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestLoggingMiddlewareSetsRequestID(t *testing.T) {
	r := gin.New()
	r.Use(GinLoggingMiddleware(), GinRecoveryMiddleware())
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}
