package view

import (
	"fmt"

	"bench-dashboard/internal/benchmark"
	"bench-dashboard/internal/binning"
)

// Scope picks the energy domain the views are computed for.
type Scope string

const (
	ScopeCPU  Scope = "cpu"
	ScopeDRAM Scope = "dram"
)

func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case "", ScopeCPU:
		return ScopeCPU, nil
	case ScopeDRAM:
		return ScopeDRAM, nil
	default:
		return "", fmt.Errorf("unknown energy scope %q", s)
	}
}

func (s Scope) EnergyMetric() benchmark.Metric {
	if s == ScopeDRAM {
		return benchmark.MetricDRAM
	}
	return benchmark.MetricCPU
}

func (s Scope) PowerMetric() benchmark.Metric {
	if s == ScopeDRAM {
		return benchmark.MetricAvPowerDRAM
	}
	return benchmark.MetricAvPowerCPU
}

func (s Scope) PerRequestMetric() benchmark.Metric {
	if s == ScopeDRAM {
		return benchmark.MetricAvDRAMPerRequest
	}
	return benchmark.MetricAvCPUPerRequest
}

// ChartMetrics are the line charts of a view, in display order.
func (s Scope) ChartMetrics() []benchmark.Metric {
	return []benchmark.Metric{
		benchmark.MetricRPS,
		benchmark.MetricLatencyAvg,
		s.PerRequestMetric(),
		s.PowerMetric(),
	}
}

// State is everything a user has picked on the dashboard.
type State struct {
	Scenario   benchmark.Scenario              `json:"scenario"`
	Languages  []string                        `json:"languages"`
	Categories map[benchmark.Category][]string `json:"categories,omitempty"`
	Levels     []float64                       `json:"levels,omitempty"`
	Scope      Scope                           `json:"scope,omitempty"`
	Selection  map[string]bool                 `json:"selection,omitempty"`

	Heatmap binning.HeatmapOptions `json:"-"`
}
