package middleware

import (
	"time"

	"hairbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LoggerKey is the gin context key of the request-scoped logger.
const LoggerKey = "logger"

// RequestLogger attaches a logger carrying the method, path and client IP, and logs the outcome.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		logger := utils.GetLogger().With(
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("ip", getClientIP(c)),
		)
		c.Set(LoggerKey, logger)

		c.Next()

		logger.Info("request completed",
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

// loggerFrom returns the request-scoped logger, or the global one outside RequestLogger.
func loggerFrom(c *gin.Context) *zap.Logger {
	if l, exists := c.Get(LoggerKey); exists {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	return utils.GetLogger()
}
