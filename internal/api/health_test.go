package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func performHealthRequest(h *HealthHandler, path string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h.Register(r)
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthz_AlwaysOK(t *testing.T) {
	h := NewHealthHandler(func(context.Context) error { return errors.New("down") })
	w := performHealthRequest(h, "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestReadyz(t *testing.T) {
	cases := []struct {
		name   string
		ping   func(context.Context) error
		status int
	}{
		{"upstream reachable", func(context.Context) error { return nil }, http.StatusOK},
		{"upstream down", func(context.Context) error { return errors.New("down") }, http.StatusServiceUnavailable},
		{"no ping configured", nil, http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := performHealthRequest(NewHealthHandler(tc.ping), "/readyz")
			assert.Equal(t, tc.status, w.Code)
		})
	}
}
