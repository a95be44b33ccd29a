package logger

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wandergo/tripmarket/logger"
)

// GinLogger logs each request with method, path, status and latency.
func GinLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		switch {
		case status >= 500:
			logger.ErrorLogger.Errorf("%s %s -> %d (%v)", c.Request.Method, c.Request.URL.Path, status, latency)
		case status >= 400:
			logger.WarnLogger.Warnf("%s %s -> %d (%v)", c.Request.Method, c.Request.URL.Path, status, latency)
		default:
			logger.InfoLogger.Infof("%s %s -> %d (%v)", c.Request.Method, c.Request.URL.Path, status, latency)
		}
	}
}
