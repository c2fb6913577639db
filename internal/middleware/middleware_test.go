package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/yigit/registrar/internal/middleware"
)

func zerologNop() zerolog.Logger { return zerolog.Nop() }

func TestRequestIDIsReusedOrGenerated(t *testing.T) {
	t.Parallel()

	router := gin.New()
	router.Use(middleware.RequestID())
	router.GET("/", func(c *gin.Context) { c.String(http.StatusOK, middleware.GetRequestID(c)) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.RequestIDHeader, "abc-123")
	router.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Body.String())
	assert.Equal(t, "abc-123", w.Header().Get(middleware.RequestIDHeader))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, w.Body.String(), 36)
	assert.Equal(t, w.Body.String(), w.Header().Get(middleware.RequestIDHeader))
}

func TestRateLimiterAllow(t *testing.T) {
	t.Parallel()

	limiter := middleware.NewRateLimiter(middleware.RateLimitConfig{RequestsPerSecond: 1, Burst: 2, ExpiresIn: time.Minute})

	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.False(t, limiter.Allow("10.0.0.1"))
	assert.True(t, limiter.Allow("10.0.0.2"), "buckets are per client")
}

func TestRateLimiterMiddleware(t *testing.T) {
	t.Parallel()

	router := gin.New()
	router.Use(middleware.NewRateLimiter(middleware.RateLimitConfig{RequestsPerSecond: 0.001, Burst: 1}).Middleware())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimiterDisabled(t *testing.T) {
	t.Parallel()

	router := gin.New()
	router.Use(middleware.NewRateLimiter(middleware.RateLimitConfig{}).Middleware())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRequestLoggerPassesThrough(t *testing.T) {
	t.Parallel()

	router := gin.New()
	router.Use(middleware.RequestID(), middleware.RequestLogger(zerolog.Nop()))
	router.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing?x=1", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
