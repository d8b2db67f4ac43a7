package domain

import "smarthaul/internal/metrics"

type HealthStatus string

const (
	StatusHealthy   HealthStatus = "healthy"
	StatusWarning   HealthStatus = "warning"
	StatusDegraded  HealthStatus = "degraded"
	StatusUnhealthy HealthStatus = "unhealthy"
)

type MetricsResponse struct {
	System    SystemMetrics   `json:"system"`
	API       APIMetrics      `json:"api"`
	Cache     CacheMetrics    `json:"cache"`
	Database  DatabaseMetrics `json:"database"`
	Timestamp float64         `json:"timestamp"`
}

type SystemMetrics struct {
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
	DiskUsage     float64 `json:"disk_usage"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Available     bool    `json:"gauges_available"`
}

type APIMetrics struct {
	TotalCalls        int64   `json:"total_calls"`
	AvgResponseTimeMs float64 `json:"avg_response_time_ms"`
	ErrorRate         float64 `json:"error_rate"`
	CallsPerSecond    float64 `json:"calls_per_second"`
}

type CacheMetrics struct {
	HitRatio      float64 `json:"cache_hit_ratio"`
	TotalRequests int64   `json:"total_cache_requests"`
	Backend       string  `json:"backend"`
}

type DatabaseMetrics struct {
	TotalQueries     int64       `json:"total_queries"`
	QueriesPerSecond float64     `json:"queries_per_second"`
	Pool             PoolMetrics `json:"pool"`
}

type PoolMetrics struct {
	Acquired int32 `json:"acquired"`
	Idle     int32 `json:"idle"`
	Total    int32 `json:"total"`
	Max      int32 `json:"max"`
}

type HealthResponse struct {
	Status    HealthStatus `json:"status"`
	Timestamp float64      `json:"timestamp"`
	Checks    HealthChecks `json:"checks"`
}

type HealthChecks struct {
	System   SystemCheck    `json:"system"`
	API      APICheck       `json:"api"`
	Database ComponentCheck `json:"database"`
	Cache    ComponentCheck `json:"cache"`
}

type SystemCheck struct {
	CPU    HealthStatus `json:"cpu,omitempty"`
	Memory HealthStatus `json:"memory,omitempty"`
	Disk   HealthStatus `json:"disk,omitempty"`
	Error  string       `json:"error,omitempty"`
}

type APICheck struct {
	ResponseTime HealthStatus `json:"response_time"`
	ErrorRate    HealthStatus `json:"error_rate"`
}

type ComponentCheck struct {
	Status HealthStatus `json:"status"`
	Type   string       `json:"type,omitempty"`
	Error  string       `json:"error,omitempty"`
}

type AlertsResponse struct {
	Alerts      []metrics.Alert `json:"alerts"`
	TotalAlerts int             `json:"total_alerts"`
	Timestamp   float64         `json:"timestamp"`
}

type MessageResponse struct {
	Message   string  `json:"message"`
	Timestamp float64 `json:"timestamp"`
}

type RateLimitResponse struct {
	RequestsPerMinute int     `json:"requests_per_minute"`
	ActiveClients     int     `json:"active_clients"`
	Timestamp         float64 `json:"timestamp"`
}
