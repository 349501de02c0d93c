package middleware

import (
	"strconv"
	"time"

	"tavern_bot/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// RequestLogger tags each request with an id, puts a request-scoped logger in
// the context and logs the outcome.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(RequestIDHeader, requestID)
		c.Set("request_id", requestID)

		log := logger.With("request_id", requestID)
		c.Request = c.Request.WithContext(logger.NewContext(c.Request.Context(), log))

		c.Next()

		status := c.Writer.Status()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		HTTPRequests.WithLabelValues(route, strconv.Itoa(status/100)+"xx").Inc()

		args := []any{
			"status", status,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"ip", c.ClientIP(),
			"latency", time.Since(start),
		}
		for _, e := range c.Errors {
			log.Error("request error", append(args, "error", e.Err)...)
		}
		switch {
		case status >= 500:
			log.Error("server error", args...)
		case status >= 400:
			log.Warn("client error", args...)
		default:
			log.Debug("request", args...)
		}
	}
}
