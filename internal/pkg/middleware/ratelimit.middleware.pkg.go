package middleware

import (
	"fmt"
	"net/http"
	types "portrait-backend/internal/common/type"
	"portrait-backend/internal/pkg/logger"
	"portrait-backend/internal/pkg/redis"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

var now = time.Now

// RateLimit allows limit requests per client IP per window using a fixed
// window counter in Redis. A Redis failure lets the request through.
func RateLimit(rds redis.IRedis, name string, limit int, window time.Duration) gin.HandlerFunc {
	windowMs := max(window.Milliseconds(), 1)
	retryAfter := strconv.FormatInt(max((windowMs+999)/1000, 1), 10)

	return func(c *gin.Context) {
		if rds == nil || limit <= 0 {
			c.Next()
			return
		}

		bucket := now().UnixMilli() / windowMs
		key := fmt.Sprintf("ratelimit:%s:%s:%d", name, c.ClientIP(), bucket)

		count, err := rds.Incr(key)
		if err != nil {
			logger.Warning.Printf("rate limit check failed: %v", err)
			c.Next()
			return
		}
		if count == 1 {
			_ = rds.Expire(key, time.Duration(windowMs)*time.Millisecond)
		}

		if count > int64(limit) {
			c.Header("Retry-After", retryAfter)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, types.ErrorResponse{
				Error: "Too many requests",
			})
			return
		}

		c.Next()
	}
}
