package aggregate

import (
	"sort"

	"bench-dashboard/internal/benchmark"

	"github.com/aclements/go-moremath/stats"
)

// Idle averages the idle rows of every name into one summary row per name,
// ordered by name. Each numeric field is the sample mean of the group; the
// categorical fields are taken from the first row of the group.
func Idle(rows []benchmark.Row) []benchmark.Row {
	groups := make(map[string][]benchmark.Row)
	for _, r := range rows {
		if r.Scenario != benchmark.ScenarioIdle {
			continue
		}
		groups[r.Name] = append(groups[r.Name], r)
	}

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]benchmark.Row, 0, len(names))
	for _, name := range names {
		out = append(out, Mean(groups[name]))
	}
	return out
}

// Mean collapses a non-empty group into one row of per-metric means.
func Mean(group []benchmark.Row) benchmark.Row {
	if len(group) == 0 {
		return benchmark.Row{}
	}
	summary := group[0]
	for _, m := range benchmark.Metrics {
		summary.SetValue(m, stats.Mean(benchmark.Values(group, m)))
	}
	return summary
}

// Bounds returns the minimum and maximum of a metric over rows. ok is false
// when rows is empty.
func Bounds(rows []benchmark.Row, m benchmark.Metric) (lo, hi float64, ok bool) {
	values := benchmark.Values(rows, m)
	if len(values) == 0 {
		return 0, 0, false
	}
	lo, hi = stats.Bounds(values)
	return lo, hi, true
}
