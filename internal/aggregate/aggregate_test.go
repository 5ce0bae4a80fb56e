package aggregate

import (
	"math"
	"testing"

	"bench-dashboard/internal/benchmark"
)

func TestIdle_MeanPerName(t *testing.T) {
	rows := []benchmark.Row{
		{Name: "a", Scenario: benchmark.ScenarioIdle, CPU: 10, DRAM: 20},
		{Name: "a", Scenario: benchmark.ScenarioIdle, CPU: 20, DRAM: 40},
		{Name: "a", Scenario: benchmark.ScenarioDB, Level: 16, CPU: 1000, DRAM: 1000},
	}
	got := Idle(rows)
	if len(got) != 1 {
		t.Fatalf("expected 1 summary row, got %d", len(got))
	}
	if math.Abs(got[0].CPU-15) > 1e-9 || math.Abs(got[0].DRAM-30) > 1e-9 {
		t.Fatalf("expected cpu=15 dram=30, got cpu=%v dram=%v", got[0].CPU, got[0].DRAM)
	}
	if got[0].Scenario != benchmark.ScenarioIdle || got[0].Name != "a" {
		t.Fatalf("summary row lost its identity: %+v", got[0])
	}
}

func TestIdle_OneRowPerNameSortedByName(t *testing.T) {
	rows := []benchmark.Row{
		{Name: "zend", Scenario: benchmark.ScenarioIdle, AvPowerCPU: 3},
		{Name: "actix", Scenario: benchmark.ScenarioIdle, AvPowerCPU: 1},
		{Name: "gin", Scenario: benchmark.ScenarioIdle, AvPowerCPU: 2},
		{Name: "actix", Scenario: benchmark.ScenarioIdle, AvPowerCPU: 5},
	}
	got := Idle(rows)
	if len(got) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(got))
	}
	if got[0].Name != "actix" || got[1].Name != "gin" || got[2].Name != "zend" {
		t.Fatalf("unexpected order: %s %s %s", got[0].Name, got[1].Name, got[2].Name)
	}
	if math.Abs(got[0].AvPowerCPU-3) > 1e-9 {
		t.Fatalf("expected actix mean power 3, got %v", got[0].AvPowerCPU)
	}
}

func TestIdle_NoIdleRows(t *testing.T) {
	if got := Idle([]benchmark.Row{{Name: "a", Scenario: benchmark.ScenarioDB}}); len(got) != 0 {
		t.Fatalf("expected no summary rows, got %d", len(got))
	}
}

func TestBounds(t *testing.T) {
	rows := []benchmark.Row{{RPS: 4}, {RPS: -2}, {RPS: 9}}
	lo, hi, ok := Bounds(rows, benchmark.MetricRPS)
	if !ok || lo != -2 || hi != 9 {
		t.Fatalf("expected (-2, 9, true), got (%v, %v, %v)", lo, hi, ok)
	}
	if _, _, ok := Bounds(nil, benchmark.MetricRPS); ok {
		t.Fatalf("expected ok=false for empty rows")
	}
}
