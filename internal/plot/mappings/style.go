package mappings

import (
	"fmt"
	"strconv"
	"strings"
)

// Plotly is the qualitative palette framework series are colored with.
var Plotly = []string{
	"#636EFA",
	"#EF553B",
	"#00CC96",
	"#AB63FA",
	"#FFA15A",
	"#19D3F3",
	"#FF6692",
	"#B6E880",
	"#FF97FF",
	"#FECB52",
}

type PlotStyle struct {
	Color       string
	LineStyle   string
	LineWidth   string
	Mark        string
	MarkOptions string
}

// seriesShapes vary dash and marker; the color comes from the palette.
var seriesShapes = []PlotStyle{
	{LineStyle: "solid", LineWidth: "thick", Mark: "*", MarkOptions: "scale=0.6"},
	{LineStyle: "densely dashed", LineWidth: "thick", Mark: "square*", MarkOptions: "scale=0.5"},
	{LineStyle: "densely dotted", LineWidth: "thick", Mark: "triangle*", MarkOptions: "scale=0.6"},
	{LineStyle: "dashdotted", LineWidth: "thick", Mark: "diamond*", MarkOptions: "scale=0.6"},
	{LineStyle: "loosely dotted", LineWidth: "thick", Mark: "pentagon*", MarkOptions: "scale=0.6"},
	{LineStyle: "dashed", LineWidth: "thick", Mark: "x", MarkOptions: "scale=0.6"},
	{LineStyle: "solid", LineWidth: "thick", Mark: "o", MarkOptions: "scale=0.5"},
	{LineStyle: "densely dashed", LineWidth: "thick", Mark: "star", MarkOptions: "scale=0.6"},
}

// Palette assigns every framework name a stable color by first appearance in
// the dataset.
type Palette struct {
	index map[string]int
}

func NewPalette(names []string) *Palette {
	p := &Palette{index: make(map[string]int, len(names))}
	for _, n := range names {
		if _, ok := p.index[n]; !ok {
			p.index[n] = len(p.index)
		}
	}
	return p
}

// Index returns the position of name, or -1 when it was not part of the dataset.
func (p *Palette) Index(name string) int {
	if i, ok := p.index[name]; ok {
		return i
	}
	return -1
}

func (p *Palette) Color(name string) string {
	i := p.Index(name)
	if i < 0 {
		i = len(p.index)
	}
	return Plotly[i%len(Plotly)]
}

// GetSeriesStyle combines a palette color with the dash/marker of series idx.
func GetSeriesStyle(color string, idx int) PlotStyle {
	if idx < 0 {
		idx = 0
	}
	s := seriesShapes[idx%len(seriesShapes)]
	s.Color = color
	return s
}

// ParseHexColor reads "#RRGGBB".
func ParseHexColor(hex string) (r, g, b uint8, err error) {
	h := strings.TrimPrefix(hex, "#")
	if len(h) != 6 {
		return 0, 0, 0, fmt.Errorf("invalid color %q", hex)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), nil
}

// TikzColor renders "#RRGGBB" as an xcolor expression.
func TikzColor(hex string) string {
	r, g, b, err := ParseHexColor(hex)
	if err != nil {
		return "black"
	}
	return fmt.Sprintf("{rgb,255:red,%d;green,%d;blue,%d}", r, g, b)
}

func (ps PlotStyle) ToTikzOptions() string {
	options := "color=" + TikzColor(ps.Color)
	if ps.LineStyle != "" {
		options += "," + ps.LineStyle
	}
	if ps.LineWidth != "" {
		options += "," + ps.LineWidth
	}
	if ps.Mark != "none" && ps.Mark != "" {
		options += ",mark=" + ps.Mark
		if ps.MarkOptions != "" {
			options += ",mark options={" + ps.MarkOptions + ",solid}"
		}
	}
	return options
}
