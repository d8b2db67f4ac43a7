package main

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/netutil"

	"smarthaul/internal/cache"
	"smarthaul/internal/config"
	"smarthaul/internal/database"
	"smarthaul/internal/handler"
	"smarthaul/internal/metrics"
	custommiddleware "smarthaul/internal/middleware"
	"smarthaul/internal/ratelimit"
	"smarthaul/internal/requestid"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	level := new(slog.LevelVar)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	if err := run(ctx, logger, level); err != nil {
		logger.Error("application failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, level *slog.LevelVar) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	level.Set(cfg.Log.Level)

	registry := metrics.NewRegistry(logger,
		metrics.WithGaugeReader(metrics.NewHostGauges(cfg.Metrics.CPUSampleInterval, cfg.Metrics.DiskPath)))

	pool, err := database.Build(ctx, cfg.Database.URL, database.NewPoolConfig(&cfg.Database), registry, logger)
	if err != nil {
		return fmt.Errorf("failed to create database pool: %w", err)
	}
	defer pool.Close()

	facade, err := cache.New(ctx, &cfg.Cache, registry, logger)
	if err != nil {
		return fmt.Errorf("failed to create cache: %w", err)
	}
	defer facade.Close()

	limiter := ratelimit.New(cfg.RateLimit.RequestsPerMinute)
	go limiter.Run(ctx, cfg.RateLimit.SweepInterval, logger)

	archive := metrics.NewArchive(pool, &cfg.Metrics, logger)
	if err := archive.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("failed to prepare call archive: %w", err)
	}
	archive.Start(ctx)
	defer archive.Close()

	ids, err := requestid.New(time.Now())
	if err != nil {
		return fmt.Errorf("failed to create request id generator: %w", err)
	}

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		metrics.NewCollector(registry),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	promRegistry.MustRegister(pool.Collectors()...)

	h := handler.New(registry, facade, limiter, pool, logger, handler.WithMetricsTTL(cfg.Metrics.ResponseTTL))
	adminAuth := custommiddleware.AdminAuth(&cfg.Admin, logger)

	extractor, err := custommiddleware.ClientIPExtractor(cfg.Server.TrustedProxies)
	if err != nil {
		return fmt.Errorf("failed to configure client ip extraction: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.IPExtractor = extractor
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: ids.Next}))
	e.Use(custommiddleware.Instrument(registry, archive))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.CORS.AllowOrigins,
		AllowCredentials: true,
	}))
	e.Use(middleware.BodyLimit(cfg.Server.MaxRequestBodySize))
	e.Use(custommiddleware.RateLimit(limiter, &cfg.RateLimit, logger))

	h.Register(e, handler.Routes{Admin: adminAuth, Pprof: cfg.Admin.PprofEnabled})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{})))

	httpAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("starting HTTP server",
		slog.String("addr", httpAddr),
		slog.Int("max_connections", cfg.Server.MaxConnections))

	httpListener, err := net.Listen("tcp", httpAddr)
	if err != nil {
		return fmt.Errorf("failed to create HTTP listener: %w", err)
	}
	if cfg.Server.MaxConnections > 0 {
		httpListener = netutil.LimitListener(httpListener, cfg.Server.MaxConnections)
	}

	httpServer := newServer(e)
	go func() {
		if err := httpServer.Serve(httpListener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", slog.String("error", err.Error()))
		}
	}()

	var httpsServer *http.Server
	if cfg.TLS.Enabled {
		httpsServer, err = serveTLS(e, &cfg.Server, &cfg.TLS, logger)
		if err != nil {
			return err
		}
	}

	<-ctx.Done()
	logger.Info("shutting down servers")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown failed: %w", err)
	}

	if httpsServer != nil {
		if err := httpsServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("https server shutdown failed: %w", err)
		}
	}

	return nil
}

func newServer(h http.Handler) *http.Server {
	return &http.Server{
		Handler:        h,
		ReadTimeout:    5 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    120 * time.Second,
		MaxHeaderBytes: 1 << 14, // 16KB
	}
}

func serveTLS(h http.Handler, server *config.ServerConfig, cfg *config.TLSConfig, logger *slog.Logger) (*http.Server, error) {
	httpsAddr := fmt.Sprintf("%s:%d", server.Host, cfg.Port)
	logger.Info("starting HTTPS server",
		slog.String("addr", httpsAddr),
		slog.Int("max_connections", server.MaxConnections))

	cert, err := tls.LoadX509KeyPair(cfg.CertFile, cfg.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load TLS certificate: %w", err)
	}

	httpsListener, err := net.Listen("tcp", httpsAddr)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTPS listener: %w", err)
	}
	if server.MaxConnections > 0 {
		httpsListener = netutil.LimitListener(httpsListener, server.MaxConnections)
	}

	tlsListener := tls.NewListener(httpsListener, &tls.Config{
		MinVersion:       tls.VersionTLS13,
		Certificates:     []tls.Certificate{cert},
		CurvePreferences: []tls.CurveID{tls.X25519},
	})

	httpsServer := newServer(h)
	go func() {
		if err := httpsServer.Serve(tlsListener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("https server error", slog.String("error", err.Error()))
		}
	}()
	return httpsServer, nil
}
