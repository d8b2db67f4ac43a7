package metrics

import "fmt"

type Severity string

const (
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

const (
	CPUWarningThreshold     = 80.0
	CPUCriticalThreshold    = 90.0
	MemoryWarningThreshold  = 80.0
	MemoryCriticalThreshold = 90.0
	ResponseTimeThreshold   = 0.5 // seconds
	ErrorRateThreshold      = 0.05
)

const (
	componentSystem = "system"
	componentAPI    = "api"
)

type Alert struct {
	Severity  Severity `json:"type"`
	Component string   `json:"component"`
	Metric    string   `json:"metric"`
	Value     float64  `json:"value"`
	Threshold float64  `json:"threshold"`
	Message   string   `json:"message"`
}

type alertRule struct {
	severity  Severity
	component string
	metric    string
	threshold float64
	value     func(Snapshot) float64
	message   func(float64) string
}

var alertRules = []alertRule{
	{
		severity: SeverityWarning, component: componentSystem, metric: "cpu_percent", threshold: CPUWarningThreshold,
		value:   func(s Snapshot) float64 { return s.System.CPUPercent },
		message: func(v float64) string { return fmt.Sprintf("High CPU usage: %.1f%%", v) },
	},
	{
		severity: SeverityCritical, component: componentSystem, metric: "cpu_percent", threshold: CPUCriticalThreshold,
		value:   func(s Snapshot) float64 { return s.System.CPUPercent },
		message: func(v float64) string { return fmt.Sprintf("Critical CPU usage: %.1f%%", v) },
	},
	{
		severity: SeverityWarning, component: componentSystem, metric: "memory_percent", threshold: MemoryWarningThreshold,
		value:   func(s Snapshot) float64 { return s.System.MemoryPercent },
		message: func(v float64) string { return fmt.Sprintf("High memory usage: %.1f%%", v) },
	},
	{
		severity: SeverityCritical, component: componentSystem, metric: "memory_percent", threshold: MemoryCriticalThreshold,
		value:   func(s Snapshot) float64 { return s.System.MemoryPercent },
		message: func(v float64) string { return fmt.Sprintf("Critical memory usage: %.1f%%", v) },
	},
	{
		severity: SeverityWarning, component: componentAPI, metric: "avg_response_time", threshold: ResponseTimeThreshold,
		value:   func(s Snapshot) float64 { return s.AvgResponseTime },
		message: func(v float64) string { return fmt.Sprintf("Slow API response time: %.3fs", v) },
	},
	{
		severity: SeverityWarning, component: componentAPI, metric: "error_rate", threshold: ErrorRateThreshold,
		value:   func(s Snapshot) float64 { return s.ErrorRate },
		message: func(v float64) string { return fmt.Sprintf("High error rate: %.2f%%", v*100) },
	},
}

// EvaluateAlerts checks every rule independently against s. A metric above
// both its warning and critical threshold yields two alerts.
func EvaluateAlerts(s Snapshot) []Alert {
	alerts := make([]Alert, 0)
	for _, rule := range alertRules {
		v := rule.value(s)
		if v <= rule.threshold {
			continue
		}
		alerts = append(alerts, Alert{
			Severity:  rule.severity,
			Component: rule.component,
			Metric:    rule.metric,
			Value:     v,
			Threshold: rule.threshold,
			Message:   rule.message(v),
		})
	}
	return alerts
}
