package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"cleanfoss-backend/config"
)

func monitorContext(target string, header map[string]string) *gin.Context {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range header {
		c.Request.Header.Set(k, v)
	}
	return c
}

func TestMonitorAuthorized(t *testing.T) {
	cfg := config.App()
	prev := cfg.MonitorSecret
	t.Cleanup(func() { cfg.MonitorSecret = prev })

	t.Run("open when no secret is configured", func(t *testing.T) {
		cfg.MonitorSecret = ""
		assert.True(t, monitorAuthorized(monitorContext("/monitor/health", nil)))
	})

	t.Run("matching header", func(t *testing.T) {
		cfg.MonitorSecret = "s3cret"
		c := monitorContext("/monitor/health", map[string]string{"X-Monitor-Secret": "s3cret"})
		assert.True(t, monitorAuthorized(c))
	})

	t.Run("matching query parameter", func(t *testing.T) {
		cfg.MonitorSecret = "s3cret"
		assert.True(t, monitorAuthorized(monitorContext("/monitor/health?secret=s3cret", nil)))
	})

	t.Run("wrong secret", func(t *testing.T) {
		cfg.MonitorSecret = "s3cret"
		c := monitorContext("/monitor/health", map[string]string{"X-Monitor-Secret": "guess"})
		assert.False(t, monitorAuthorized(c))
	})

	t.Run("missing secret", func(t *testing.T) {
		cfg.MonitorSecret = "s3cret"
		assert.False(t, monitorAuthorized(monitorContext("/monitor/health", nil)))
	})
}
