package metrics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smarthaul/internal/metrics"
)

func TestEvaluateAlerts_Quiet(t *testing.T) {
	alerts := metrics.EvaluateAlerts(metrics.Snapshot{
		AvgResponseTime: 0.1,
		ErrorRate:       0.01,
		System:          metrics.SystemGauges{CPUPercent: 20, MemoryPercent: 30, Available: true},
	})

	require.NotNil(t, alerts)
	assert.Empty(t, alerts)
}

func TestEvaluateAlerts_Thresholds(t *testing.T) {
	tests := []struct {
		name     string
		snapshot metrics.Snapshot
		want     []string // severity/metric pairs
	}{
		{
			name:     "cpu at warning threshold is not alerted",
			snapshot: metrics.Snapshot{System: metrics.SystemGauges{CPUPercent: 80}},
			want:     nil,
		},
		{
			name:     "cpu above warning",
			snapshot: metrics.Snapshot{System: metrics.SystemGauges{CPUPercent: 85}},
			want:     []string{"warning/cpu_percent"},
		},
		{
			name:     "cpu above critical raises both",
			snapshot: metrics.Snapshot{System: metrics.SystemGauges{CPUPercent: 95}},
			want:     []string{"warning/cpu_percent", "critical/cpu_percent"},
		},
		{
			name:     "memory above critical raises both",
			snapshot: metrics.Snapshot{System: metrics.SystemGauges{MemoryPercent: 91}},
			want:     []string{"warning/memory_percent", "critical/memory_percent"},
		},
		{
			name:     "slow responses",
			snapshot: metrics.Snapshot{AvgResponseTime: 0.75},
			want:     []string{"warning/avg_response_time"},
		},
		{
			name:     "error rate",
			snapshot: metrics.Snapshot{ErrorRate: 0.06},
			want:     []string{"warning/error_rate"},
		},
		{
			name: "everything at once",
			snapshot: metrics.Snapshot{
				AvgResponseTime: 1,
				ErrorRate:       0.5,
				System:          metrics.SystemGauges{CPUPercent: 99, MemoryPercent: 99},
			},
			want: []string{
				"warning/cpu_percent", "critical/cpu_percent",
				"warning/memory_percent", "critical/memory_percent",
				"warning/avg_response_time", "warning/error_rate",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alerts := metrics.EvaluateAlerts(tt.snapshot)

			got := make([]string, 0, len(alerts))
			for _, a := range alerts {
				got = append(got, string(a.Severity)+"/"+a.Metric)
			}
			assert.ElementsMatch(t, tt.want, got)
		})
	}
}

func TestEvaluateAlerts_Record(t *testing.T) {
	alerts := metrics.EvaluateAlerts(metrics.Snapshot{ErrorRate: 0.125})
	require.Len(t, alerts, 1)

	a := alerts[0]
	assert.Equal(t, metrics.SeverityWarning, a.Severity)
	assert.Equal(t, "api", a.Component)
	assert.Equal(t, "error_rate", a.Metric)
	assert.Equal(t, 0.125, a.Value)
	assert.Equal(t, metrics.ErrorRateThreshold, a.Threshold)
	assert.Equal(t, "High error rate: 12.50%", a.Message)
}

func TestEvaluateAlerts_CPUMessage(t *testing.T) {
	alerts := metrics.EvaluateAlerts(metrics.Snapshot{System: metrics.SystemGauges{CPUPercent: 85.34}})
	require.Len(t, alerts, 1)
	assert.Equal(t, "system", alerts[0].Component)
	assert.Equal(t, "High CPU usage: 85.3%", alerts[0].Message)
}
