package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"

	"smarthaul/internal/config"
)

// PoolConfig sizes the pool as a fixed core of Size connections plus up to
// MaxOverflow extra ones that are closed after OverflowIdleTimeout idle.
type PoolConfig struct {
	Size                int32
	MaxOverflow         int32
	PrePing             bool
	RecycleInterval     time.Duration
	OverflowIdleTimeout time.Duration
	SlowQueryThreshold  time.Duration
}

func NewPoolConfig(cfg *config.DatabaseConfig) PoolConfig {
	return PoolConfig{
		Size:                cfg.PoolSize,
		MaxOverflow:         cfg.MaxOverflow,
		PrePing:             cfg.PrePing,
		RecycleInterval:     cfg.RecycleInterval,
		OverflowIdleTimeout: cfg.OverflowIdleTimeout,
		SlowQueryThreshold:  cfg.SlowQueryThreshold,
	}
}

type Pool struct {
	*pgxpool.Pool
}

type PoolStats struct {
	Acquired int32
	Idle     int32
	Total    int32
	Max      int32
}

// ParseConfig maps cfg onto a pgxpool config with query tracing installed.
func ParseConfig(connString string, cfg PoolConfig, recorder QueryRecorder, logger *slog.Logger) (*pgxpool.Config, error) {
	pc, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database url: %w", err)
	}

	size := max(cfg.Size, 1)
	pc.MinConns = size
	pc.MaxConns = size + max(cfg.MaxOverflow, 0)
	if cfg.RecycleInterval > 0 {
		pc.MaxConnLifetime = cfg.RecycleInterval
	}
	if cfg.OverflowIdleTimeout > 0 {
		pc.MaxConnIdleTime = cfg.OverflowIdleTimeout
	}

	if cfg.PrePing {
		pc.BeforeAcquire = func(ctx context.Context, conn *pgx.Conn) bool {
			// A false return destroys the connection and acquires another.
			return conn.Ping(ctx) == nil
		}
	}

	pc.ConnConfig.Tracer = NewQueryTracer(recorder, cfg.SlowQueryThreshold, logger)
	return pc, nil
}

// Build creates the pool without dialling; connection errors surface on first
// use and are returned to the caller unchanged.
func Build(ctx context.Context, connString string, cfg PoolConfig, recorder QueryRecorder, logger *slog.Logger) (*Pool, error) {
	pc, err := ParseConfig(connString, cfg, recorder, logger)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("failed to create database pool: %w", err)
	}

	logger.Info("database pool created",
		slog.Int("size", int(pc.MinConns)),
		slog.Int("max_conns", int(pc.MaxConns)),
		slog.Bool("pre_ping", cfg.PrePing),
		slog.Duration("recycle", pc.MaxConnLifetime))

	return &Pool{Pool: pool}, nil
}

func (p *Pool) Stats() PoolStats {
	s := p.Stat()
	return PoolStats{
		Acquired: s.AcquiredConns(),
		Idle:     s.IdleConns(),
		Total:    s.TotalConns(),
		Max:      s.MaxConns(),
	}
}

// Collectors exposes pool occupancy to Prometheus, sampled at scrape time.
func (p *Pool) Collectors() []prometheus.Collector {
	gauge := func(name, help string, read func(PoolStats) int32) prometheus.Collector {
		return prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "smarthaul",
			Subsystem: "db_pool",
			Name:      name,
			Help:      help,
		}, func() float64 {
			return float64(read(p.Stats()))
		})
	}
	return []prometheus.Collector{
		gauge("acquired_conns", "Connections currently checked out.", func(s PoolStats) int32 { return s.Acquired }),
		gauge("idle_conns", "Idle connections held by the pool.", func(s PoolStats) int32 { return s.Idle }),
		gauge("total_conns", "All connections held by the pool.", func(s PoolStats) int32 { return s.Total }),
		gauge("max_conns", "Upper bound on pool connections.", func(s PoolStats) int32 { return s.Max }),
	}
}
