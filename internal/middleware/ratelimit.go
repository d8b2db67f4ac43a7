package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"smarthaul/internal/config"
	"smarthaul/internal/ratelimit"
)

type ClientLimiter interface {
	IsAllowed(clientID string) bool
}

type rateLimitResponse struct {
	Error      string `json:"error"`
	RetryAfter int    `json:"retry_after"`
}

var retryAfterSeconds = int(ratelimit.Window.Seconds())

var (
	rateLimitExceededResp = rateLimitResponse{
		Error:      "rate limit exceeded",
		RetryAfter: retryAfterSeconds,
	}
	rateLimiterInternalErr = map[string]string{
		"error": "internal server error",
	}
)

const bypassHeader = "X-Rate-Limit-Bypass"

// limiterStore adapts the sliding-window limiter to echo's RateLimiterStore.
type limiterStore struct {
	limiter ClientLimiter
}

func (s limiterStore) Allow(identifier string) (bool, error) {
	return s.limiter.IsAllowed(identifier), nil
}

func RateLimit(limiter ClientLimiter, cfg *config.RateLimitConfig, logger *slog.Logger) echo.MiddlewareFunc {
	secret := []byte(cfg.BypassSecret)
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: limiterStore{limiter: limiter},
		Skipper: func(c echo.Context) bool {
			if cfg.BypassSecret == "" {
				return false
			}
			provided := c.Request().Header.Get(bypassHeader)
			return subtle.ConstantTimeCompare([]byte(provided), secret) == 1
		},
		// RealIP follows the echo instance's IPExtractor; see ClientIPExtractor.
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			logger.Warn("rate limit exceeded",
				slog.String("ip", identifier),
				slog.String("path", c.Path()),
			)
			c.Response().Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds))
			return c.JSON(http.StatusTooManyRequests, rateLimitExceededResp)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			logger.Error("rate limiter error", slog.String("error", err.Error()))
			return c.JSON(http.StatusInternalServerError, rateLimiterInternalErr)
		},
	})
}
