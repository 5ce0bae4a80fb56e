package view

import (
	"fmt"
	"sort"

	"bench-dashboard/internal/aggregate"
	"bench-dashboard/internal/benchmark"
	"bench-dashboard/internal/binning"
	"bench-dashboard/internal/filter"
	"bench-dashboard/internal/logging"
	"bench-dashboard/internal/plot/mappings"

	"github.com/sirupsen/logrus"
)

const IdleChartLabel = "idle_power"

// ChartLabel is the artifact label of the line chart for m.
func ChartLabel(m benchmark.Metric) string {
	return "line_plot_" + string(m)
}

// Entities lists the frameworks matching the language, scenario and category
// filters of state. Selection and levels do not apply here.
func Entities(store *benchmark.Store, state State) (EntityTable, error) {
	rows, err := filter.Apply(store.Rows(), filter.Criteria{
		Scenario:   state.Scenario,
		Languages:  state.Languages,
		Categories: state.Categories,
	})
	if err != nil {
		return EntityTable{}, err
	}

	cols := []string{"id", "display_name", string(benchmark.CategoryLanguage)}
	for _, c := range benchmark.FilterCategories {
		cols = append(cols, string(c))
	}
	return EntityTable{Columns: cols, Entities: filter.Entities(rows)}, nil
}

// Build assembles the table, its styles and the charts for state. Rows are
// restricted by selection, scenario and levels; the idle chart uses the
// selected frameworks across all scenarios.
func Build(store *benchmark.Store, state State) (*Model, error) {
	scope, err := ParseScope(string(state.Scope))
	if err != nil {
		return nil, err
	}
	if state.Scenario == "" || !state.Scenario.Valid() {
		return nil, fmt.Errorf("%w: unknown scenario %q", filter.ErrEmptySelection, state.Scenario)
	}

	m := &Model{
		Title:    mappings.Title(state.Scenario),
		Scenario: state.Scenario,
		Scope:    scope,
		Levels:   store.Levels(state.Scenario),
	}
	if len(state.Selection) == 0 {
		m.Empty = true
		return m, nil
	}

	all := store.Rows()
	rows, err := filter.Apply(all, filter.Criteria{
		Scenario:    state.Scenario,
		AnyLanguage: true,
		Levels:      state.Levels,
		Selection:   state.Selection,
	})
	if err != nil {
		return nil, err
	}

	styles, err := tableStyles(rows, scope, state.Heatmap)
	if err != nil {
		return nil, err
	}

	palette := mappings.NewPalette(store.Names())
	displayNames := store.DisplayNames()

	m.Columns = tableColumns(state.Scenario, scope)
	m.Rows = rows
	m.Styles = styles
	for _, metric := range scope.ChartMetrics() {
		m.Charts = append(m.Charts, lineChart(rows, state.Scenario, metric, palette, displayNames))
	}
	m.Charts = append(m.Charts, idleChart(filter.BySelection(all, state.Selection), scope, palette, displayNames))
	return m, nil
}

// Render is Build for the interaction boundary: a rejected state yields an
// empty model carrying the reason instead of an error.
func Render(store *benchmark.Store, state State) *Model {
	m, err := Build(store, state)
	if err == nil {
		return m
	}
	logging.GetLogger().WithFields(logrus.Fields{
		"scenario": state.Scenario,
		"scope":    state.Scope,
	}).WithError(err).Debug("View state rejected")

	return &Model{
		Title:    mappings.Title(state.Scenario),
		Scenario: state.Scenario,
		Scope:    state.Scope,
		Levels:   store.Levels(state.Scenario),
		Empty:    true,
		Notice:   err.Error(),
	}
}

func tableStyles(rows []benchmark.Row, scope Scope, opts binning.HeatmapOptions) ([]binning.StyleRule, error) {
	power := scope.PowerMetric()
	perRequest := scope.PerRequestMetric()

	styles, err := binning.Heatmap(benchmark.Values(rows, power), string(power), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to style %s: %w", power, err)
	}
	more, err := binning.Heatmap(benchmark.Values(rows, perRequest), string(perRequest), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to style %s: %w", perRequest, err)
	}
	styles = append(styles, more...)
	styles = append(styles, binning.Bars(benchmark.Values(rows, benchmark.MetricTotalRequests), string(benchmark.MetricTotalRequests))...)
	return styles, nil
}

func tableColumns(scenario benchmark.Scenario, scope Scope) []Column {
	return []Column{
		{ID: "name", Name: "name"},
		{ID: string(benchmark.CategoryLanguage), Name: "Language"},
		{ID: string(benchmark.MetricLevel), Name: mappings.XLabel(scenario), Type: "text", Presentation: "dropdown"},
		{ID: string(benchmark.MetricLatencyAvg), Name: "Average Latency", Type: "numeric",
			Format: &Format{Precision: 2, Suffix: "ms"}},
		{ID: string(benchmark.MetricTotalRequests), Name: "Total Requests", Type: "numeric",
			Format: &Format{Precision: 2, Scheme: "si"}},
		{ID: string(scope.PowerMetric()), Name: "Average Power (W)", Type: "numeric",
			Format: &Format{Precision: 3, Scheme: "si", Suffix: "W"}},
		{ID: string(scope.PerRequestMetric()), Name: "Average energy consumption per request (Joules)", Type: "numeric",
			Format: &Format{Precision: 3, Scheme: "si", Suffix: "j"}},
	}
}

func seriesFor(name string, palette *mappings.Palette, displayNames map[string]string) Series {
	dn := displayNames[name]
	if dn == "" {
		dn = name
	}
	return Series{Name: name, DisplayName: dn, Color: palette.Color(name), Index: palette.Index(name)}
}

func lineChart(rows []benchmark.Row, scenario benchmark.Scenario, metric benchmark.Metric, palette *mappings.Palette, displayNames map[string]string) Chart {
	mapping, _ := mappings.GetMetricMapping(metric)
	chart := Chart{
		Label:    ChartLabel(metric),
		Kind:     ChartLine,
		Title:    mapping.ShortLabel,
		Scenario: scenario,
		Metric:   metric,
		XLabel:   mappings.XLabel(scenario),
		YLabel:   mapping.Label,
	}

	byName := make(map[string]int)
	for _, r := range rows {
		i, ok := byName[r.Name]
		if !ok {
			i = len(chart.Series)
			byName[r.Name] = i
			chart.Series = append(chart.Series, seriesFor(r.Name, palette, displayNames))
		}
		y, _ := r.Value(metric)
		chart.Series[i].Points = append(chart.Series[i].Points, Point{X: r.Level, Y: y})
	}
	for i := range chart.Series {
		pts := chart.Series[i].Points
		sort.SliceStable(pts, func(a, b int) bool { return pts[a].X < pts[b].X })
	}
	return chart
}

func idleChart(selected []benchmark.Row, scope Scope, palette *mappings.Palette, displayNames map[string]string) Chart {
	metric := scope.PowerMetric()
	mapping, _ := mappings.GetMetricMapping(metric)
	chart := Chart{
		Label:    IdleChartLabel,
		Kind:     ChartBar,
		Title:    "Idle power",
		Scenario: benchmark.ScenarioIdle,
		Metric:   metric,
		XLabel:   mapping.Label,
		YLabel:   "Frameworks",
	}
	for _, r := range aggregate.Idle(selected) {
		s := seriesFor(r.Name, palette, displayNames)
		s.Value, _ = r.Value(metric)
		chart.Series = append(chart.Series, s)
	}
	return chart
}
