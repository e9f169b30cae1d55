package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupRouter(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	r.GET("/ok", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	return r
}

func TestRequestID(t *testing.T) {
	r := setupRouter(RequestID())

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	first := w.Header().Get("X-Request-ID")
	assert.NotEmpty(t, first)

	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req)
	assert.NotEqual(t, first, w2.Header().Get("X-Request-ID"), "each request gets its own id")
}

func TestRequestLogger_PassesThrough(t *testing.T) {
	r := setupRouter(RequestID(), RequestLogger())

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRecoveryMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RecoveryMiddleware())
	r.GET("/panic", func(*gin.Context) { panic("kaboom") })

	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Internal server error")
}

func TestErrorHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler)
	r.GET("/fails", func(c *gin.Context) {
		c.Status(http.StatusBadRequest)
		_ = c.Error(assert.AnError)
	})

	req := httptest.NewRequest(http.MethodGet, "/fails", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "request failed")
}

func TestRateLimiter(t *testing.T) {
	r := setupRouter(RateLimiter())

	var lastCode int
	for i := 0; i < limit+1; i++ {
		req := httptest.NewRequest(http.MethodGet, "/ok", nil)
		req.RemoteAddr = "10.1.2.3:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		lastCode = w.Code
	}

	assert.Equal(t, http.StatusTooManyRequests, lastCode)
}
