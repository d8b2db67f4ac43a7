package database

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
)

const maxLoggedQueryLen = 100

type QueryRecorder interface {
	RecordQuery()
}

type traceKey struct{}

type queryTrace struct {
	start time.Time
	sql   string
}

// QueryTracer counts every query and warns about ones slower than threshold.
// Start time and SQL travel in the context pgx hands back to TraceQueryEnd,
// so nested queries on one connection each see their own start.
type QueryTracer struct {
	recorder  QueryRecorder
	threshold time.Duration
	logger    *slog.Logger
	now       func() time.Time
}

func NewQueryTracer(recorder QueryRecorder, threshold time.Duration, logger *slog.Logger) *QueryTracer {
	return &QueryTracer{
		recorder:  recorder,
		threshold: threshold,
		logger:    logger,
		now:       time.Now,
	}
}

func (t *QueryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	t.recorder.RecordQuery()
	return context.WithValue(ctx, traceKey{}, queryTrace{start: t.now(), sql: data.SQL})
}

func (t *QueryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	trace, ok := ctx.Value(traceKey{}).(queryTrace)
	if !ok {
		return
	}
	elapsed := t.now().Sub(trace.start)
	if elapsed <= t.threshold {
		return
	}

	attrs := []any{
		slog.Duration("duration", elapsed),
		slog.String("query", truncate(trace.sql, maxLoggedQueryLen)),
	}
	if data.Err != nil {
		attrs = append(attrs, slog.String("error", data.Err.Error()))
	}
	t.logger.Warn("slow query detected", attrs...)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
