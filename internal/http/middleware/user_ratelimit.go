package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

// PerUser limits requests per logged-in Discord user. Session must run first.
func (l *RateLimiter) PerUser(maxRequests int, window time.Duration) gin.HandlerFunc {
	return l.limit("user", maxRequests, window, func(c *gin.Context) (string, bool) {
		id := UserID(c)
		return id, id != ""
	})
}
