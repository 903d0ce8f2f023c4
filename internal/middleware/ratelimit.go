package middleware

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/velizhask/KADA-Connect/internal/config"
)

// SearchRateLimiter applies a token bucket limiter to catalogue search
// requests. Only GET requests under the given path prefixes that carry a
// q parameter count against the bucket; plain listing stays unmetered.
func SearchRateLimiter(cfg config.RateLimitConfig, pathPrefixes ...string) echo.MiddlewareFunc {
	if cfg.Requests <= 0 || cfg.Interval <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				return next(c)
			}
		}
	}

	perRequest := cfg.Interval / time.Duration(cfg.Requests)
	if perRequest <= 0 {
		perRequest = time.Second
	}

	limiter := rate.NewLimiter(rate.Every(perRequest), cfg.Requests)
	var mu sync.Mutex

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !isSearchRequest(c, pathPrefixes) {
				return next(c)
			}

			mu.Lock()
			allowed := limiter.Allow()
			mu.Unlock()

			if !allowed {
				return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "search rate limit exceeded"})
			}

			return next(c)
		}
	}
}

func isSearchRequest(c echo.Context, pathPrefixes []string) bool {
	if c.Request().Method != http.MethodGet {
		return false
	}
	if strings.TrimSpace(c.QueryParam("q")) == "" {
		return false
	}
	path := c.Request().URL.Path
	for _, prefix := range pathPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
