package config

import (
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func PerformanceLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)

		log.WithFields(log.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": latency,
		}).Info("request")

		if latency > 200*time.Millisecond {
			log.WithFields(log.Fields{
				"method":  c.Request.Method,
				"path":    c.Request.URL.Path,
				"latency": latency,
			}).Warn("slow request")
		}
	}
}
