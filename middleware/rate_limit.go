package middleware

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/VCSTDN/PROG6212-Part-2-SikhumbuzoNgwane/config"
	"github.com/gin-gonic/gin"
)

// RateLimiter counts requests per client IP within a fixed window. Counters
// reset wholesale when the window rolls over; a burst straddling the boundary
// can briefly exceed the rate, which is acceptable for form traffic.
type RateLimiter struct {
	mu        sync.Mutex
	counts    map[string]int
	lastReset time.Time
	rate      int
	window    time.Duration
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(rate int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		counts:    make(map[string]int),
		lastReset: time.Now(),
		rate:      rate,
		window:    window,
	}
}

// Allow records a request from the given client and reports whether it is
// within the configured rate
func (l *RateLimiter) Allow(clientIP string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if time.Since(l.lastReset) > l.window {
		l.counts = make(map[string]int)
		l.lastReset = time.Now()
	}

	if l.counts[clientIP] >= l.rate {
		return false
	}
	l.counts[clientIP]++
	return true
}

// RateLimit limits requests per client IP using the server configuration
func RateLimit(cfg *config.ServerConfig) gin.HandlerFunc {
	limiter := NewRateLimiter(cfg.RateLimit, time.Duration(cfg.RateLimitWindowSec)*time.Second)

	return func(c *gin.Context) {
		clientIP := c.ClientIP()

		if !limiter.Allow(clientIP) {
			slog.Warn("rate limit exceeded",
				"client_ip", clientIP,
				"request_id", GetRequestID(c),
			)

			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Please try again later.",
			})
			return
		}

		c.Next()
	}
}
