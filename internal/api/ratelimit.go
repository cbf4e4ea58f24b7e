package api

import (
	"net/http"
	"sync"

	"ukphone/internal/logger"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// IPRateLimiter manages per-IP rate limiters.
type IPRateLimiter struct {
	limiters sync.Map
	rate     rate.Limit
	burst    int
}

// NewIPRateLimiter creates a limiter allowing rps requests per second per client IP.
func NewIPRateLimiter(rps float64, burst int) *IPRateLimiter {
	return &IPRateLimiter{
		rate:  rate.Limit(rps),
		burst: burst,
	}
}

func (i *IPRateLimiter) getLimiter(ip string) *rate.Limiter {
	limiter, _ := i.limiters.LoadOrStore(ip, rate.NewLimiter(i.rate, i.burst))
	return limiter.(*rate.Limiter)
}

// Allow reports whether a request from ip may proceed now
func (i *IPRateLimiter) Allow(ip string) bool {
	return i.getLimiter(ip).Allow()
}

// RateLimit returns a middleware that rate limits by IP.
func (i *IPRateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		if !i.Allow(ip) {
			logger.Warn().
				Str("request_id", RequestID(c)).
				Str("client_ip", ip).
				Str("path", c.Request.URL.Path).
				Msg("rate limit exceeded")
			AbortWithError(c, http.StatusTooManyRequests, ErrCodeRateLimited, "Rate limit exceeded, retry later")
			return
		}

		c.Next()
	}
}
