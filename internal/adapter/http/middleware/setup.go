package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Setup registers all middleware on the Echo instance in the correct order:
//  1. RequestID - generates/propagates the request ID for all subsequent logging
//  2. RequestLogger - logs all requests with the request ID
//  3. Recover - catches panics and returns 500 (wraps handlers)
//  4. RateLimit - rejects clients exceeding their token bucket
//
// This function should be called before registering routes.
func Setup(e *echo.Echo, log zerolog.Logger, rateLimit RateLimitConfig) {
	e.Use(RequestID())
	e.Use(RequestLogger(log))
	e.Use(Recover(log))
	e.Use(RateLimit(rateLimit))
}
