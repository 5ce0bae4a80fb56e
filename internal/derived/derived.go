package derived

import (
	"fmt"

	"bench-dashboard/internal/benchmark"
)

const (
	// DefaultDuration is the measurement window of one run in seconds.
	DefaultDuration = 20.0
	// DefaultSamplingFactor models two energy samples per window.
	DefaultSamplingFactor = 2.0
)

type Params struct {
	Duration       float64 `yaml:"duration"`
	SamplingFactor float64 `yaml:"sampling_factor"`
}

func DefaultParams() Params {
	return Params{Duration: DefaultDuration, SamplingFactor: DefaultSamplingFactor}
}

func (p Params) Validate() error {
	if p.Duration <= 0 {
		return fmt.Errorf("duration must be greater than 0, got %v", p.Duration)
	}
	if p.SamplingFactor <= 0 {
		return fmt.Errorf("sampling factor must be greater than 0, got %v", p.SamplingFactor)
	}
	return nil
}

// perRequest returns 0 when no requests were served.
func perRequest(energy, requests float64) float64 {
	if requests == 0 {
		return 0
	}
	return energy / requests
}

// Compute fills the derived fields of a row from its raw fields and
// relabels zero-load rows as idle.
func Compute(row benchmark.Row, p Params) benchmark.Row {
	row.AvPowerCPU = row.CPU / p.Duration / p.SamplingFactor
	row.AvPowerDRAM = row.DRAM / p.Duration / p.SamplingFactor
	row.AvCPUPerRequest = perRequest(row.CPU, row.TotalRequests)
	row.AvDRAMPerRequest = perRequest(row.DRAM, row.TotalRequests)
	row.RPS = row.TotalRequests / p.Duration

	if row.Level == 0 {
		row.Scenario = benchmark.ScenarioIdle
	}
	return row
}

// Enrich returns a new slice with every row computed.
func Enrich(rows []benchmark.Row, p Params) []benchmark.Row {
	out := make([]benchmark.Row, len(rows))
	for i, r := range rows {
		out[i] = Compute(r, p)
	}
	return out
}
