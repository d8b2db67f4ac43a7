package ratelimit

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const (
	DefaultRequestsPerMinute = 100
	Window                   = time.Minute
)

// Limiter admits at most limit requests per client in any trailing one-minute
// window. A timestamp exactly Window old still counts against the client.
type Limiter struct {
	mu      sync.Mutex
	clients map[string][]time.Time
	limit   int
	now     func() time.Time
}

type Option func(*Limiter)

func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		l.now = now
	}
}

// New returns a limiter allowing requestsPerMinute per client; values below 1
// select the default of 100.
func New(requestsPerMinute int, opts ...Option) *Limiter {
	if requestsPerMinute <= 0 {
		requestsPerMinute = DefaultRequestsPerMinute
	}
	l := &Limiter{
		clients: make(map[string][]time.Time),
		limit:   requestsPerMinute,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// IsAllowed records the attempt and returns true when the client is under its
// ceiling. Rejected attempts are not recorded.
func (l *Limiter) IsAllowed(clientID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	hits := evict(l.clients[clientID], now.Add(-Window))

	if len(hits) >= l.limit {
		l.clients[clientID] = hits
		return false
	}
	l.clients[clientID] = append(hits, now)
	return true
}

// Sweep evicts stale timestamps for every client and forgets clients with
// nothing left in their window. It returns the number of clients removed.
func (l *Limiter) Sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	windowStart := l.now().Add(-Window)
	removed := 0
	for id, hits := range l.clients {
		hits = evict(hits, windowStart)
		if len(hits) == 0 {
			delete(l.clients, id)
			removed++
			continue
		}
		l.clients[id] = hits
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (l *Limiter) Run(ctx context.Context, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		interval = Window
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := l.Sweep(); n > 0 {
				logger.Debug("rate limiter swept idle clients", slog.Int("removed", n))
			}
		}
	}
}

type Status struct {
	RequestsPerMinute int
	ActiveClients     int
}

func (l *Limiter) Status() Status {
	l.mu.Lock()
	defer l.mu.Unlock()
	return Status{RequestsPerMinute: l.limit, ActiveClients: len(l.clients)}
}

// evict drops timestamps strictly before windowStart. Timestamps are appended
// in order, so the survivors are a suffix.
func evict(hits []time.Time, windowStart time.Time) []time.Time {
	i := 0
	for i < len(hits) && hits[i].Before(windowStart) {
		i++
	}
	if i == 0 {
		return hits
	}
	return append(hits[:0], hits[i:]...)
}
