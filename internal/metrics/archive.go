package metrics

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"smarthaul/internal/config"
)

const archiveTable = "api_calls"

var archiveColumns = []string{
	"time", "method", "path", "status_code", "duration_ms", "client_ip", "request_id", "error",
}

const createArchiveTable = `CREATE TABLE IF NOT EXISTS api_calls (
	time        TIMESTAMPTZ      NOT NULL,
	method      TEXT             NOT NULL,
	path        TEXT             NOT NULL,
	status_code INTEGER          NOT NULL,
	duration_ms DOUBLE PRECISION NOT NULL,
	client_ip   TEXT             NOT NULL,
	request_id  TEXT             NOT NULL,
	error       TEXT             NOT NULL
)`

// ArchiveDB is the subset of *pgxpool.Pool the archive writes through.
type ArchiveDB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	CopyFrom(ctx context.Context, table pgx.Identifier, columns []string, src pgx.CopyFromSource) (int64, error)
}

// Archive batches HTTP calls in memory and bulk-loads them into Postgres.
// Recording never blocks: when the buffer is full the call is dropped.
type Archive struct {
	db           ArchiveDB
	logger       *slog.Logger
	cfg          *config.MetricsConfig
	calls        chan HTTPCall
	wg           sync.WaitGroup
	shutdownOnce sync.Once
	shutdownCh   chan struct{}
}

func NewArchive(db ArchiveDB, cfg *config.MetricsConfig, logger *slog.Logger) *Archive {
	return &Archive{
		db:         db,
		logger:     logger,
		cfg:        cfg,
		calls:      make(chan HTTPCall, max(cfg.BufferSize, 1)),
		shutdownCh: make(chan struct{}),
	}
}

func (a *Archive) EnsureSchema(ctx context.Context) error {
	if !a.cfg.ArchiveEnabled {
		return nil
	}
	if _, err := a.db.Exec(ctx, createArchiveTable); err != nil {
		return fmt.Errorf("failed to create %s table: %w", archiveTable, err)
	}
	return nil
}

func (a *Archive) RecordHTTP(c HTTPCall) {
	if !a.cfg.ArchiveEnabled {
		return
	}
	select {
	case a.calls <- c:
	default:
		a.logger.Warn("call archive buffer full, dropping record")
	}
}

func (a *Archive) Start(ctx context.Context) {
	if !a.cfg.ArchiveEnabled {
		a.logger.Info("call archive disabled")
		return
	}

	a.wg.Add(1)
	go a.run(ctx)

	a.logger.Info("call archive started",
		slog.Int("buffer_size", a.cfg.BufferSize),
		slog.Duration("flush_interval", a.cfg.FlushInterval))
}

// Close stops the flush loop after writing whatever is still buffered.
func (a *Archive) Close() {
	a.shutdownOnce.Do(func() {
		close(a.shutdownCh)
		a.wg.Wait()
	})
}

func (a *Archive) run(ctx context.Context) {
	defer a.wg.Done()

	interval := a.cfg.FlushInterval
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	threshold := max(a.cfg.FlushThreshold, 1)
	batch := make([]HTTPCall, 0, threshold)

	for {
		select {
		case <-ctx.Done():
			a.drain(batch)
			return
		case <-a.shutdownCh:
			a.drain(batch)
			return
		case c := <-a.calls:
			batch = append(batch, c)
			if len(batch) >= threshold {
				a.write(ctx, batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				a.write(ctx, batch)
				batch = batch[:0]
			}
		}
	}
}

func (a *Archive) drain(batch []HTTPCall) {
	for {
		select {
		case c := <-a.calls:
			batch = append(batch, c)
		default:
			if len(batch) > 0 {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				a.write(ctx, batch)
				cancel()
			}
			return
		}
	}
}

func (a *Archive) write(ctx context.Context, batch []HTTPCall) {
	rows := make([][]any, len(batch))
	for i, c := range batch {
		rows[i] = []any{c.Time, c.Method, c.Path, c.StatusCode, c.DurationMs, c.ClientIP, c.RequestID, c.Error}
	}

	_, err := a.db.CopyFrom(ctx, pgx.Identifier{archiveTable}, archiveColumns, pgx.CopyFromRows(rows))
	if err != nil {
		a.logger.Error("failed to write call archive batch",
			slog.Int("size", len(batch)),
			slog.String("error", err.Error()))
	}
}
