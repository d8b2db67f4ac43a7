package handler

import (
	"testing"
	"time"

	"smarthaul/internal/domain"
)

func TestBelowOrWarning(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		limit    float64
		expected domain.HealthStatus
	}{
		{name: "well below", value: 10, limit: 80, expected: domain.StatusHealthy},
		{name: "just below", value: 79.9, limit: 80, expected: domain.StatusHealthy},
		{name: "at limit warns", value: 80, limit: 80, expected: domain.StatusWarning},
		{name: "above limit", value: 95, limit: 80, expected: domain.StatusWarning},
		{name: "response time", value: 0.49, limit: 0.5, expected: domain.StatusHealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := belowOrWarning(tt.value, tt.limit)
			if result != tt.expected {
				t.Errorf("belowOrWarning(%v, %v) = %q, want %q", tt.value, tt.limit, result, tt.expected)
			}
		})
	}
}

func TestUnixSeconds(t *testing.T) {
	ts := time.Unix(1_700_000_000, 500_000_000)
	if got := unixSeconds(ts); got != 1_700_000_000.5 {
		t.Errorf("unixSeconds = %v, want 1700000000.5", got)
	}
}
