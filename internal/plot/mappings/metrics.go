package mappings

import "bench-dashboard/internal/benchmark"

type MetricMapping struct {
	Label      string
	ShortLabel string
	Unit       string
}

var MetricMappings = map[benchmark.Metric]MetricMapping{
	benchmark.MetricLatencyAvg: {
		Label:      "Latency (ms)",
		ShortLabel: "Average latency",
		Unit:       "ms",
	},
	benchmark.MetricLatency99: {
		Label:      "Latency (ms)",
		ShortLabel: "99th percentile latency",
		Unit:       "ms",
	},
	benchmark.MetricTotalRequests: {
		Label:      "Number of requests",
		ShortLabel: "Total requests",
	},
	benchmark.MetricRPS: {
		Label:      "RPS",
		ShortLabel: "Requests per second",
	},
	benchmark.MetricCPU: {
		Label:      "Energy (J)",
		ShortLabel: "CPU energy",
		Unit:       "J",
	},
	benchmark.MetricDRAM: {
		Label:      "Energy (J)",
		ShortLabel: "DRAM energy",
		Unit:       "J",
	},
	benchmark.MetricAvPowerCPU: {
		Label:      "Power (W)",
		ShortLabel: "Average CPU power",
		Unit:       "W",
	},
	benchmark.MetricAvPowerDRAM: {
		Label:      "Power (W)",
		ShortLabel: "Average DRAM power",
		Unit:       "W",
	},
	benchmark.MetricAvCPUPerRequest: {
		Label:      "Energy (J)",
		ShortLabel: "CPU energy per request",
		Unit:       "J",
	},
	benchmark.MetricAvDRAMPerRequest: {
		Label:      "Energy (J)",
		ShortLabel: "DRAM energy per request",
		Unit:       "J",
	},
}

// GetMetricMapping falls back to the metric id when no mapping is known.
func GetMetricMapping(m benchmark.Metric) (MetricMapping, bool) {
	if mapping, ok := MetricMappings[m]; ok {
		return mapping, true
	}
	return MetricMapping{Label: string(m), ShortLabel: string(m)}, false
}
