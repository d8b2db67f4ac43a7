package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"smarthaul/internal/cache"
	"smarthaul/internal/domain"
	"smarthaul/internal/metrics"
)

const (
	gaugeWarningPercent   = 80.0
	gaugeUnhealthyPercent = 90.0
	responseTimeHealthy   = 0.5 // seconds
	responseTimeUnhealthy = 2.0 // seconds
	errorRateHealthy      = 0.05
	errorRateUnhealthy    = 0.1

	healthCheckTimeout = 2 * time.Second

	metricsCacheName = "perf:metrics"
	metricsCacheArg  = "snapshot"
)

const (
	msgCacheCleared     = "Cache cleared successfully"
	msgCacheClearFailed = "Cache clear requested; backend reported a failure"
	errGaugesUnreadable = "host gauges unavailable"
	errCacheRoundTrip   = "cache round-trip failed"
)

var respHealthOK = map[string]string{"status": "ok"}

type Handler struct {
	metrics MetricsSource
	cache   Cache
	limiter RateLimitReporter
	db      Database
	logger  *slog.Logger

	metricsTTL     time.Duration
	metricsPayload func(ctx context.Context, arg string) (string, error)
}

type Option func(*Handler)

// WithMetricsTTL serves the metrics payload from the cache for ttl after it
// is built. Zero or less rebuilds it on every request.
func WithMetricsTTL(ttl time.Duration) Option {
	return func(h *Handler) {
		h.metricsTTL = ttl
	}
}

func New(
	metricsSource MetricsSource,
	cacheStore Cache,
	limiter RateLimitReporter,
	db Database,
	logger *slog.Logger,
	opts ...Option,
) *Handler {
	h := &Handler{
		metrics: metricsSource,
		cache:   cacheStore,
		limiter: limiter,
		db:      db,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(h)
	}

	h.metricsPayload = h.buildMetricsPayload
	if h.metricsTTL > 0 {
		h.metricsPayload = cache.Wrap(h.cache, metricsCacheName, h.metricsTTL, h.buildMetricsPayload)
	}
	return h
}

// Routes selects the optional parts of the API. Admin, when set, guards
// cache clear and the pprof group.
type Routes struct {
	Admin echo.MiddlewareFunc
	Pprof bool
}

func (h *Handler) Register(e *echo.Echo, routes Routes) {
	var admin []echo.MiddlewareFunc
	if routes.Admin != nil {
		admin = append(admin, routes.Admin)
	}

	e.GET("/api/v1/health", h.Health)

	perf := e.Group("/api/performance")
	perf.GET("/metrics", h.Metrics)
	perf.GET("/health", h.HealthCheck)
	perf.GET("/alerts", h.Alerts)
	perf.GET("/rate-limits", h.RateLimits)
	perf.POST("/cache/clear", h.ClearCache, admin...)

	if routes.Pprof {
		registerPprof(e.Group(pprofPrefix, admin...))
		h.logger.Info("pprof endpoints enabled", slog.String("path", pprofPrefix+"/*"))
	}
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, respHealthOK)
}

func (h *Handler) Metrics(c echo.Context) error {
	payload, err := h.metricsPayload(c.Request().Context(), metricsCacheArg)
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, []byte(payload))
}

func (h *Handler) buildMetricsPayload(ctx context.Context, _ string) (string, error) {
	s := h.metrics.Snapshot(ctx)
	pool := h.db.Stats()

	body, err := json.Marshal(domain.MetricsResponse{
		System: domain.SystemMetrics{
			CPUPercent:    s.System.CPUPercent,
			MemoryPercent: s.System.MemoryPercent,
			DiskUsage:     s.System.DiskPercent,
			UptimeSeconds: s.Uptime.Seconds(),
			Available:     s.System.Available,
		},
		API: domain.APIMetrics{
			TotalCalls:        s.Calls,
			AvgResponseTimeMs: s.AvgResponseTime * 1000,
			ErrorRate:         s.ErrorRate,
			CallsPerSecond:    s.CallsPerSecond(),
		},
		Cache: domain.CacheMetrics{
			HitRatio:      s.CacheHitRatio(),
			TotalRequests: s.CacheRequests(),
			Backend:       h.cache.Kind(),
		},
		Database: domain.DatabaseMetrics{
			TotalQueries:     s.Queries,
			QueriesPerSecond: s.QueriesPerSecond(),
			Pool: domain.PoolMetrics{
				Acquired: pool.Acquired,
				Idle:     pool.Idle,
				Total:    pool.Total,
				Max:      pool.Max,
			},
		},
		Timestamp: unixSeconds(s.Timestamp),
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode metrics: %w", err)
	}
	return string(body), nil
}

// HealthCheck always answers 200; the verdict is in the body. Any failed
// component makes the service unhealthy, unreadable host gauges only degrade it.
func (h *Handler) HealthCheck(c echo.Context) error {
	ctx := c.Request().Context()
	s := h.metrics.Snapshot(ctx)

	resp := domain.HealthResponse{
		Status:    domain.StatusHealthy,
		Timestamp: unixSeconds(time.Now()),
	}
	degraded, unhealthy := false, false

	if s.System.Available {
		g := s.System
		resp.Checks.System = domain.SystemCheck{
			CPU:    gaugeStatus(g.CPUPercent),
			Memory: gaugeStatus(g.MemoryPercent),
			Disk:   gaugeStatus(g.DiskPercent),
		}
		if g.CPUPercent > gaugeUnhealthyPercent || g.MemoryPercent > gaugeUnhealthyPercent ||
			g.DiskPercent > gaugeUnhealthyPercent {
			unhealthy = true
		}
	} else {
		resp.Checks.System = domain.SystemCheck{Error: errGaugesUnreadable}
		degraded = true
	}

	resp.Checks.API = domain.APICheck{
		ResponseTime: belowOrWarning(s.AvgResponseTime, responseTimeHealthy),
		ErrorRate:    belowOrWarning(s.ErrorRate, errorRateHealthy),
	}
	if s.AvgResponseTime > responseTimeUnhealthy || s.ErrorRate > errorRateUnhealthy {
		unhealthy = true
	}

	resp.Checks.Database = h.checkDatabase(ctx)
	if resp.Checks.Database.Status != domain.StatusHealthy {
		unhealthy = true
	}

	resp.Checks.Cache = h.checkCache(ctx)
	if resp.Checks.Cache.Status != domain.StatusHealthy {
		unhealthy = true
	}

	switch {
	case unhealthy:
		resp.Status = domain.StatusUnhealthy
	case degraded:
		resp.Status = domain.StatusDegraded
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) checkDatabase(ctx context.Context) domain.ComponentCheck {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.logger.Warn("database health check failed", slog.String("error", err.Error()))
		return domain.ComponentCheck{Status: domain.StatusUnhealthy, Error: err.Error()}
	}
	return domain.ComponentCheck{Status: domain.StatusHealthy}
}

func (h *Handler) checkCache(ctx context.Context) domain.ComponentCheck {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	check := domain.ComponentCheck{Status: domain.StatusHealthy, Type: h.cache.Kind()}
	if !h.cache.Ping(ctx) {
		check.Status = domain.StatusUnhealthy
		check.Error = errCacheRoundTrip
	}
	return check
}

func (h *Handler) Alerts(c echo.Context) error {
	s := h.metrics.Snapshot(c.Request().Context())
	alerts := metrics.EvaluateAlerts(s)

	return c.JSON(http.StatusOK, domain.AlertsResponse{
		Alerts:      alerts,
		TotalAlerts: len(alerts),
		Timestamp:   unixSeconds(s.Timestamp),
	})
}

// ClearCache is best effort and always acknowledges the request.
func (h *Handler) ClearCache(c echo.Context) error {
	msg := msgCacheCleared
	if !h.cache.Clear(c.Request().Context()) {
		h.logger.Warn("cache clear incomplete", slog.String("backend", h.cache.Kind()))
		msg = msgCacheClearFailed
	}
	return c.JSON(http.StatusOK, domain.MessageResponse{
		Message:   msg,
		Timestamp: unixSeconds(time.Now()),
	})
}

func (h *Handler) RateLimits(c echo.Context) error {
	st := h.limiter.Status()
	return c.JSON(http.StatusOK, domain.RateLimitResponse{
		RequestsPerMinute: st.RequestsPerMinute,
		ActiveClients:     st.ActiveClients,
		Timestamp:         unixSeconds(time.Now()),
	})
}

func gaugeStatus(pct float64) domain.HealthStatus {
	return belowOrWarning(pct, gaugeWarningPercent)
}

func belowOrWarning(v, limit float64) domain.HealthStatus {
	if v < limit {
		return domain.StatusHealthy
	}
	return domain.StatusWarning
}

func unixSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}
