package metrics

import (
	"context"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

const collectInterval = 5 * time.Second

var (
	SystemCPUUsage = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "moveit_system_cpu_usage_percent",
			Help: "CPU usage percentage",
		},
	)

	SystemMemoryUsage = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "moveit_system_memory_usage_bytes",
			Help: "System memory usage in bytes",
		},
	)

	ApplicationMemoryUsage = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "moveit_application_memory_usage_bytes",
			Help: "Application memory usage in bytes (Go heap allocation)",
		},
	)

	ApplicationGoroutines = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "moveit_application_goroutines",
			Help: "Number of goroutines, grows with open availability streams",
		},
	)
)

// StartSystemMetricsCollector снимает показатели раз в collectInterval,
// пока не отменен ctx.
func StartSystemMetricsCollector(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(collectInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				collectSystemMetrics(ctx)
			}
		}
	}()
}

func collectSystemMetrics(ctx context.Context) {
	cpuPercent, err := cpu.PercentWithContext(ctx, time.Second, false)
	if err == nil && len(cpuPercent) > 0 {
		SystemCPUUsage.Set(cpuPercent[0])
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	vmStat, err := mem.VirtualMemoryWithContext(ctx)
	if err == nil {
		SystemMemoryUsage.Set(float64(vmStat.Used))
	}

	ApplicationMemoryUsage.Set(float64(m.Alloc))
	ApplicationGoroutines.Set(float64(runtime.NumGoroutine()))
}
