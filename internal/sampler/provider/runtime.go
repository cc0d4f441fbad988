package provider

import (
	"context"
	"runtime"

	"github.com/kazakovdmitriy/go-eventmanager/internal/model"
)

// RuntimeProvider reads Go runtime memory statistics.
type RuntimeProvider struct{}

func NewRuntimeProvider() *RuntimeProvider {
	return &RuntimeProvider{}
}

func (p *RuntimeProvider) Name() string {
	return "runtime"
}

func (p *RuntimeProvider) Collect(ctx context.Context) (model.Sample, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return model.Sample{
		"Alloc":         float64(m.Alloc),
		"BuckHashSys":   float64(m.BuckHashSys),
		"Frees":         float64(m.Frees),
		"GCCPUFraction": m.GCCPUFraction,
		"GCSys":         float64(m.GCSys),
		"HeapAlloc":     float64(m.HeapAlloc),
		"HeapIdle":      float64(m.HeapIdle),
		"HeapInuse":     float64(m.HeapInuse),
		"HeapObjects":   float64(m.HeapObjects),
		"HeapReleased":  float64(m.HeapReleased),
		"HeapSys":       float64(m.HeapSys),
		"LastGC":        float64(m.LastGC),
		"Mallocs":       float64(m.Mallocs),
		"NextGC":        float64(m.NextGC),
		"NumGC":         float64(m.NumGC),
		"PauseTotalNs":  float64(m.PauseTotalNs),
		"StackInuse":    float64(m.StackInuse),
		"Sys":           float64(m.Sys),
		"TotalAlloc":    float64(m.TotalAlloc),
		"NumGoroutine":  float64(runtime.NumGoroutine()),
	}, nil
}
