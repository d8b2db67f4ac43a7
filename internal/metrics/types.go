package metrics

import "time"

// Snapshot is a point-in-time view of the registry. Derived rates are
// computed on demand and never stored.
type Snapshot struct {
	Calls           int64
	AvgResponseTime float64 // seconds
	ErrorRate       float64
	Queries         int64
	CacheHits       int64
	CacheMisses     int64
	StartTime       time.Time
	Uptime          time.Duration
	Timestamp       time.Time
	System          SystemGauges
}

type SystemGauges struct {
	CPUPercent    float64
	MemoryPercent float64
	DiskPercent   float64
	// Available is false when at least one gauge could not be read and was
	// replaced with zero.
	Available bool
}

func (s Snapshot) CacheRequests() int64 {
	return s.CacheHits + s.CacheMisses
}

func (s Snapshot) CacheHitRatio() float64 {
	return hitRatio(s.CacheHits, s.CacheMisses)
}

func (s Snapshot) CallsPerSecond() float64 {
	return float64(s.Calls) / max(s.Uptime.Seconds(), 1)
}

func (s Snapshot) QueriesPerSecond() float64 {
	return float64(s.Queries) / max(s.Uptime.Seconds(), 1)
}

func hitRatio(hits, misses int64) float64 {
	return float64(hits) / float64(max(hits+misses, 1))
}

// HTTPCall is one archived request.
type HTTPCall struct {
	Time       time.Time
	Method     string
	Path       string
	StatusCode int
	DurationMs float64
	ClientIP   string
	RequestID  string
	Error      string
}
