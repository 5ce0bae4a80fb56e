package view

import (
	"bench-dashboard/internal/benchmark"
	"bench-dashboard/internal/binning"
	"bench-dashboard/internal/filter"
)

type Format struct {
	Precision int    `json:"precision"`
	Scheme    string `json:"scheme,omitempty"`
	Suffix    string `json:"suffix,omitempty"`
}

// Column describes one column of the result table.
type Column struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Type         string  `json:"type,omitempty"`
	Presentation string  `json:"presentation,omitempty"`
	Format       *Format `json:"format,omitempty"`
}

type ChartKind string

const (
	ChartLine ChartKind = "line"
	ChartBar  ChartKind = "bar"
)

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Series is one framework in a chart. Line charts carry points over the
// level axis; bar charts carry a single value.
type Series struct {
	Name        string  `json:"name"`
	DisplayName string  `json:"display_name"`
	Color       string  `json:"color"`
	Index       int     `json:"index"`
	Points      []Point `json:"points,omitempty"`
	Value       float64 `json:"value,omitempty"`
}

type Chart struct {
	Label    string             `json:"label"`
	Kind     ChartKind          `json:"kind"`
	Title    string             `json:"title"`
	Scenario benchmark.Scenario `json:"scenario"`
	Metric   benchmark.Metric   `json:"metric"`
	XLabel   string             `json:"x_label"`
	YLabel   string             `json:"y_label"`
	Series   []Series           `json:"series"`
}

type EntityTable struct {
	Columns  []string        `json:"columns"`
	Entities []filter.Entity `json:"entities"`
}

// Model is the complete view of one dashboard state.
type Model struct {
	Title    string              `json:"title"`
	Scenario benchmark.Scenario  `json:"scenario"`
	Scope    Scope               `json:"scope"`
	Levels   []float64           `json:"levels"`
	Columns  []Column            `json:"columns,omitempty"`
	Rows     []benchmark.Row     `json:"rows,omitempty"`
	Styles   []binning.StyleRule `json:"styles,omitempty"`
	Charts   []Chart             `json:"charts,omitempty"`

	// Empty is set when nothing is selected yet or the state was rejected.
	Empty  bool   `json:"empty"`
	Notice string `json:"notice,omitempty"`
}
