package provider

import (
	"context"
	"fmt"

	"github.com/kazakovdmitriy/go-eventmanager/internal/model"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// SystemProvider reads host memory and per-CPU utilization through gopsutil.
type SystemProvider struct{}

func NewSystemProvider() *SystemProvider {
	return &SystemProvider{}
}

func (p *SystemProvider) Name() string {
	return "system"
}

func (p *SystemProvider) Collect(ctx context.Context) (model.Sample, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	memInfo, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read virtual memory: %w", err)
	}

	sample := model.Sample{
		"TotalMemory": float64(memInfo.Total),
		"FreeMemory":  float64(memInfo.Free),
		"UsedPercent": memInfo.UsedPercent,
	}

	cpuPercent, err := cpu.PercentWithContext(ctx, 0, true)
	if err != nil {
		return nil, fmt.Errorf("failed to read cpu utilization: %w", err)
	}

	for i, utilization := range cpuPercent {
		sample[fmt.Sprintf("CPUutilization%d", i+1)] = utilization
	}

	return sample, nil
}
