package middleware

import (
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// RateLimitConfig holds per-client token bucket settings.
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// DefaultRateLimitConfig returns sensible limits for a small public API.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerSecond: 10,
		Burst:             20,
	}
}

// clientLimiter hands out one token bucket per client IP.
type clientLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	config   RateLimitConfig
}

func (cl *clientLimiter) get(ip string) *rate.Limiter {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	limiter, ok := cl.limiters[ip]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(cl.config.RequestsPerSecond), cl.config.Burst)
		cl.limiters[ip] = limiter
	}
	return limiter
}

// RateLimit returns middleware that rejects clients exceeding their token
// bucket with 429 Too Many Requests. Buckets are keyed by client IP.
func RateLimit(config RateLimitConfig) echo.MiddlewareFunc {
	cl := &clientLimiter{
		limiters: make(map[string]*rate.Limiter),
		config:   config,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !cl.get(c.RealIP()).Allow() {
				return c.JSON(http.StatusTooManyRequests, map[string]any{
					"code":    "rate_limited",
					"message": "Too many requests, slow down",
				})
			}
			return next(c)
		}
	}
}
