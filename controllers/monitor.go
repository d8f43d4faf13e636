// controllers/monitor.go
package controllers

import (
	"crypto/subtle"
	"net/http"
	"os"
	"runtime"
	"time"

	"cleanfoss-backend/config"

	"github.com/gin-gonic/gin"
)

var processStart = time.Now()

// monitorAuthorized gates the monitoring endpoints behind an optional
// shared secret, passed as a header or query parameter.
func monitorAuthorized(c *gin.Context) bool {
	secret := config.App().MonitorSecret
	if secret == "" {
		return true
	}
	provided := c.GetHeader("X-Monitor-Secret")
	if provided == "" {
		provided = c.Query("secret")
	}
	return subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) == 1
}

// Health reports database connectivity and auth configuration presence.
func Health(c *gin.Context) {
	if !monitorAuthorized(c) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid monitor secret"})
		return
	}

	dbStatus := "ok"
	sqlDB, err := config.DB.DB()
	if err != nil {
		dbStatus = "unavailable"
	} else if err := sqlDB.Ping(); err != nil {
		dbStatus = "unavailable"
	}

	status := http.StatusOK
	if dbStatus != "ok" {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{
		"status":           dbStatus,
		"database":         dbStatus,
		"authConfigured":   os.Getenv("JWT_SECRET") != "",
		"stripeConfigured": config.App().StripeSecretKey != "",
		"time":             time.Now().UTC(),
	})
}

// Metrics exposes read-only process metrics.
func Metrics(c *gin.Context) {
	if !monitorAuthorized(c) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid monitor secret"})
		return
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	stats := gin.H{
		"uptimeSeconds": int64(time.Since(processStart).Seconds()),
		"goroutines":    runtime.NumGoroutine(),
		"allocBytes":    mem.Alloc,
		"sysBytes":      mem.Sys,
		"numGC":         mem.NumGC,
	}

	if sqlDB, err := config.DB.DB(); err == nil {
		dbStats := sqlDB.Stats()
		stats["dbOpenConnections"] = dbStats.OpenConnections
		stats["dbInUse"] = dbStats.InUse
		stats["dbIdle"] = dbStats.Idle
	}

	c.JSON(http.StatusOK, stats)
}
