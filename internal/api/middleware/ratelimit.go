// Package middleware holds the HTTP middleware of the REST backend.
package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/dogukanakin/local-mcp/internal/api/metrics"
)

// RateLimit rejects requests above the given sustained rate with 429 and the
// canonical error envelope. A single process-wide limiter is enough here:
// the backend serves one agent session at a time.
func RateLimit(limit rate.Limit, burst int) echo.MiddlewareFunc {
	limiter := rate.NewLimiter(limit, burst)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !limiter.Allow() {
				metrics.RateLimitedTotal.Inc()
				return echo.NewHTTPError(http.StatusTooManyRequests, "Rate limit exceeded")
			}
			return next(c)
		}
	}
}
