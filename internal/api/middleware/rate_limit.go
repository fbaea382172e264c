package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Frey210/SiWarga/pkg/redis"
	"github.com/Frey210/SiWarga/pkg/response"
)

// RateLimit throttles a route per client IP using a Redis counter window.
// rdb may be nil; the limit then degrades to a pass, same policy as JWTAuth.
func RateLimit(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("rate_limit:%s:%s", c.ClientIP(), c.FullPath())
		allowed, err := rdb.CheckRateLimit(c.Request.Context(), key, limit, window)
		if err != nil {
			// a Redis error degrades to a pass
			c.Next()
			return
		}

		if !allowed {
			response.Error(c, http.StatusTooManyRequests, 10004, "too many requests")
			c.Abort()
			return
		}

		c.Next()
	}
}
