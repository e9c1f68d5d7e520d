package middleware

import (
	"net/http"
	"sync"
	"time"

	"dci-control-server/internal/auth"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const limiterTTL = 5 * time.Minute

type cachedLimiter struct {
	limiter   *rate.Limiter
	expiresAt time.Time
}

// RateLimiter hands out one token bucket per caller.
type RateLimiter struct {
	rps      rate.Limit
	burst    int
	limiters sync.Map // key -> *cachedLimiter
	now      func() time.Time
}

// NewRateLimiter creates a limiter allowing rps requests per second per
// caller with bursts of burst. Zero rps disables limiting.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{rps: rate.Limit(rps), burst: burst, now: time.Now}
}

// Handler rejects requests over the caller's budget with 429. It must run
// after authentication; anonymous requests are keyed by client address.
func (l *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if l.rps <= 0 {
			c.Next()
			return
		}

		key := "ip:" + c.ClientIP()
		if caller, ok := auth.GetCaller(c); ok {
			key = "user:" + caller.UserID.String()
		}

		if !l.get(key).Allow() {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"status_code": http.StatusTooManyRequests,
				"message":     "too many requests",
				"payload":     gin.H{},
			})
			return
		}
		c.Next()
	}
}

func (l *RateLimiter) get(key string) *rate.Limiter {
	now := l.now()
	if cached, ok := l.limiters.Load(key); ok {
		entry := cached.(*cachedLimiter)
		if now.Before(entry.expiresAt) {
			return entry.limiter
		}
	}

	limiter := rate.NewLimiter(l.rps, l.burst)
	l.limiters.Store(key, &cachedLimiter{limiter: limiter, expiresAt: now.Add(limiterTTL)})
	return limiter
}
