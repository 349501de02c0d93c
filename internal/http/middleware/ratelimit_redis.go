package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"tavern_bot/internal/http/response"
	"tavern_bot/internal/logger"

	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"
)

// RateLimiter is a fixed-window limiter backed by Redis INCR/EXPIRE.
// With a nil client it counts in process; on Redis errors it fails open.
type RateLimiter struct {
	client *redis.Client
	prefix string
	local  *localWindow
}

func NewRateLimiter(client *redis.Client, prefix string) *RateLimiter {
	return &RateLimiter{client: client, prefix: prefix, local: newLocalWindow()}
}

// NewRedisClient pings addr and returns nil when it is empty or unreachable,
// keeping the server available without Redis.
func NewRedisClient(addr, password string, db int) *redis.Client {
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unavailable, using in-process fallbacks", "addr", addr, "error", err)
		_ = client.Close()
		return nil
	}
	return client
}

// incr counts one hit for key in the window. key format: <prefix>:rl:<window_seconds>:<identifier>
func (l *RateLimiter) incr(ctx context.Context, ident string, window time.Duration) (int64, error) {
	key := l.prefix + ":rl:" + strconv.FormatInt(int64(window.Seconds()), 10) + ":" + ident
	if l.client == nil {
		return l.local.incr(key, window), nil
	}

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	ttl := pipe.TTL(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	// a key without expiry would never reset; this covers the first hit and
	// any earlier hit whose EXPIRE failed
	if ttl.Val() < 0 {
		if err := l.client.Expire(ctx, key, window).Err(); err != nil {
			return 0, err
		}
	}
	return incr.Val(), nil
}

// PerIP limits requests per client IP.
func (l *RateLimiter) PerIP(maxRequests int, window time.Duration) gin.HandlerFunc {
	return l.limit("ip", maxRequests, window, func(c *gin.Context) (string, bool) {
		return c.ClientIP(), true
	})
}

func (l *RateLimiter) limit(scope string, maxRequests int, window time.Duration, identify func(*gin.Context) (string, bool)) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := identify(c)
		if !ok {
			response.Abort(c, http.StatusUnauthorized, response.CodeUnauthorized, "Log in first.")
			return
		}

		val, err := l.incr(c.Request.Context(), scope+":"+ident, window)
		if err != nil {
			c.Header("X-RateLimit-Error", "redis-error")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(maxRequests))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(max(0, int64(maxRequests)-val), 10))

		endpoint := scope + ":" + c.FullPath()
		if val > int64(maxRequests) {
			RLBlocked.WithLabelValues(endpoint).Inc()
			c.Header("Retry-After", strconv.Itoa(int(window.Seconds())))
			response.Abort(c, http.StatusTooManyRequests, response.CodeRateLimited, "Too many requests. Slow down.")
			return
		}

		RLRequests.WithLabelValues(endpoint).Inc()
		c.Next()
	}
}
