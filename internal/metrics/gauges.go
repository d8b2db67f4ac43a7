package metrics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
)

// HostGauges reads CPU, memory and disk utilisation from the OS.
type HostGauges struct {
	cpuInterval time.Duration
	diskPath    string
}

// NewHostGauges returns a reader that samples CPU over cpuInterval. A zero
// interval compares against the previous call instead of blocking.
func NewHostGauges(cpuInterval time.Duration, diskPath string) *HostGauges {
	if diskPath == "" {
		diskPath = "/"
	}
	return &HostGauges{cpuInterval: cpuInterval, diskPath: diskPath}
}

// Read returns whatever gauges could be sampled; failed ones stay zero and
// the joined error describes them.
func (h *HostGauges) Read(ctx context.Context) (SystemGauges, error) {
	var (
		g    SystemGauges
		errs []error
	)

	if pct, err := cpu.PercentWithContext(ctx, h.cpuInterval, false); err != nil {
		errs = append(errs, fmt.Errorf("failed to read cpu: %w", err))
	} else if len(pct) > 0 {
		g.CPUPercent = pct[0]
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err != nil {
		errs = append(errs, fmt.Errorf("failed to read memory: %w", err))
	} else {
		g.MemoryPercent = vm.UsedPercent
	}

	if du, err := disk.UsageWithContext(ctx, h.diskPath); err != nil {
		errs = append(errs, fmt.Errorf("failed to read disk usage of %s: %w", h.diskPath, err))
	} else {
		g.DiskPercent = du.UsedPercent
	}

	g.Available = len(errs) == 0
	return g, errors.Join(errs...)
}
