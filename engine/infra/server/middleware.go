package server

import (
	"time"

	"github.com/fretforge/fretforge/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// requestContext tags every request with an id and attaches a scoped logger
// to the request context so downstream code logs with request correlation.
func requestContext(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Writer.Header().Set("X-Request-ID", requestID)
		reqLog := log.With("request_id", requestID)
		ctx := logger.ContextWithLogger(c.Request.Context(), reqLog)
		c.Request = c.Request.WithContext(ctx)
		start := time.Now()
		c.Next()
		reqLog.Debug("request handled",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
