package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"motorent/internal/redis"
)

// RateLimitTier bounds the request rate for a group of routes.
type RateLimitTier struct {
	Name   string
	Limit  int64
	Window time.Duration
}

// Predefined tiers. Strict guards auth endpoints, moderate guards mutating
// endpoints, lenient guards read endpoints.
var (
	TierStrict   = RateLimitTier{Name: "strict", Limit: 10, Window: time.Minute}
	TierModerate = RateLimitTier{Name: "moderate", Limit: 60, Window: time.Minute}
	TierLenient  = RateLimitTier{Name: "lenient", Limit: 300, Window: time.Minute}
)

// RateLimitMiddleware returns middleware enforcing a fixed-window request
// budget per client IP. A nil store disables limiting, which keeps local
// setups and tests working without Redis.
func RateLimitMiddleware(store redis.RateLimitStoreInterface, tier RateLimitTier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if store == nil {
			c.Next()
			return
		}

		key := tier.Name + ":" + c.ClientIP()
		count, reset, err := store.Incr(c.Request.Context(), key, tier.Window)
		if err != nil {
			// Counting is best-effort: an unreachable Redis must not take
			// the API down with it.
			c.Next()
			return
		}

		remaining := tier.Limit - count
		if remaining < 0 {
			remaining = 0
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(tier.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(reset).Unix(), 10))

		if count > tier.Limit {
			c.Header("Retry-After", strconv.Itoa(int(reset.Seconds())+1))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}

		c.Next()
	}
}
