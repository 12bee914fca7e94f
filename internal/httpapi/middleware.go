package httpapi

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/maurice2k/shardqueue/internal/applog"
)

// RequestLogger logs one structured line per request via applog, grounded
// on task-api's LoggerWithConfig but routed through zap instead of raw
// stdout writes.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		applog.Get().Infow("request",
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		)
	}
}

// Recovery converts a panic inside a gin handler into a 500 response and
// logs it, rather than crashing the server goroutine. Gin ships its own
// gin.Recovery(); this keeps the same behavior but routes the log line
// through applog for consistency with the rest of the runtime.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				applog.Get().Errorw("panic recovered in handler", "recovered", r, "path", c.Request.URL.Path)
				c.AbortWithStatus(500)
			}
		}()
		c.Next()
	}
}
