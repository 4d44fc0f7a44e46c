package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	mem "zenjourney/pkg/memcache"
	"zenjourney/pkg/utils"
)

// RateLimiter throttles requests per client IP with a token bucket.
type RateLimiter struct {
	limiters *mem.Store[*rate.Limiter]
	limit    rate.Limit
	burst    int
}

// NewRateLimiter allows burst requests at once and refills one every interval.
// Idle clients are forgotten after idleTTL.
func NewRateLimiter(interval time.Duration, burst int, idleTTL time.Duration) *RateLimiter {
	return &RateLimiter{
		limiters: mem.NewStore[*rate.Limiter](idleTTL, idleTTL),
		limit:    rate.Every(interval),
		burst:    burst,
	}
}

func (r *RateLimiter) Allow(key string) bool {
	limiter := r.limiters.GetOrSet(key, func() *rate.Limiter {
		return rate.NewLimiter(r.limit, r.burst)
	})
	return limiter.Allow()
}

func (r *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !r.Allow(c.ClientIP()) {
			c.Header("Retry-After", "60")
			utils.RespondError(c, http.StatusTooManyRequests, utils.ErrTooManyRequests.Error())
			c.Abort()
			return
		}
		c.Next()
	}
}
