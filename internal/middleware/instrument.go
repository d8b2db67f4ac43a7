package middleware

import (
	"cmp"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"smarthaul/internal/metrics"
)

//go:generate go tool mockery

const (
	responseTimeHeader  = "X-Response-Time"
	cacheHitRatioHeader = "X-Cache-Hit-Ratio"
)

type CallRecorder interface {
	RecordCall(d time.Duration, statusCode int)
	CacheHitRatio() float64
}

type CallArchive interface {
	RecordHTTP(c metrics.HTTPCall)
}

// Instrument times every request, stamps the response with its duration and
// the current cache hit ratio, and records the call exactly once, panics
// included. It must run outside Recover so recovered panics are seen as 500s.
func Instrument(recorder CallRecorder, archive CallArchive) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			start := time.Now()
			res := c.Response()
			res.Before(func() {
				h := res.Header()
				h.Set(responseTimeHeader, strconv.FormatFloat(time.Since(start).Seconds(), 'f', -1, 64))
				h.Set(cacheHitRatioHeader, strconv.FormatFloat(recorder.CacheHitRatio(), 'f', -1, 64))
			})

			completed := false
			defer func() {
				duration := time.Since(start)
				status := resolveStatus(c, err, !completed)
				recorder.RecordCall(duration, status)

				var errStr string
				if err != nil {
					errStr = err.Error()
				} else if !completed {
					errStr = "panic"
				}
				archive.RecordHTTP(metrics.HTTPCall{
					Time:       start,
					Method:     c.Request().Method,
					Path:       cmp.Or(c.Path(), "/"),
					StatusCode: status,
					DurationMs: float64(duration.Microseconds()) / 1000.0,
					ClientIP:   c.RealIP(),
					RequestID:  res.Header().Get(echo.HeaderXRequestID),
					Error:      errStr,
				})
			}()

			err = next(c)
			completed = true
			return err
		}
	}
}

// resolveStatus predicts the status the client will see. Errors returned up
// the chain are written later by echo's error handler.
func resolveStatus(c echo.Context, err error, panicked bool) int {
	if panicked {
		return http.StatusInternalServerError
	}
	if err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return he.Code
		}
		if !c.Response().Committed {
			return http.StatusInternalServerError
		}
	}
	return c.Response().Status
}
