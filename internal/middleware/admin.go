package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"smarthaul/internal/config"
)

const adminSecretHeader = "X-Admin-Secret"

var (
	adminUnauthorizedResp = map[string]string{"error": "unauthorized"}
	adminDisabledResp     = map[string]string{"error": "admin endpoints disabled"}
)

// AdminAuth guards the operational routes (cache clear, pprof) with the
// shared secret from cfg. When no secret is configured the routes stay open
// only if cfg.AllowUnauthenticated is set. Every refusal is logged with the
// route and client IP.
func AdminAuth(cfg *config.AdminConfig, logger *slog.Logger) echo.MiddlewareFunc {
	secret := []byte(cfg.Secret)

	deny := func(c echo.Context, status int, reason string, body map[string]string) error {
		logger.Warn("admin access denied",
			slog.String("route", c.Path()),
			slog.String("method", c.Request().Method),
			slog.String("ip", c.RealIP()),
			slog.String("reason", reason),
		)
		return c.JSON(status, body)
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if len(secret) == 0 {
				if cfg.AllowUnauthenticated {
					return next(c)
				}
				return deny(c, http.StatusForbidden, "no admin secret configured", adminDisabledResp)
			}

			provided := c.Request().Header.Get(adminSecretHeader)
			if provided == "" {
				return deny(c, http.StatusUnauthorized, "missing secret", adminUnauthorizedResp)
			}
			if subtle.ConstantTimeCompare([]byte(provided), secret) != 1 {
				return deny(c, http.StatusUnauthorized, "wrong secret", adminUnauthorizedResp)
			}
			return next(c)
		}
	}
}
