package binning

import (
	"math"
)

// DefaultColormap is the reversed red-yellow-green ramp: low values green, high values red.
// TODO: have the product owner confirm this direction; "RdYlGn" gives low red, high green.
const DefaultColormap = "RdYlGn_r"

type HeatmapOptions struct {
	Colormap string
	LogScale bool
}

// Heatmap colors every distinct value of a column. Unlike the bar variants it
// emits one rule per observed value rather than per bin.
func Heatmap(values []float64, column string, opts HeatmapOptions) ([]StyleRule, error) {
	if len(values) == 0 {
		return nil, nil
	}
	name := opts.Colormap
	if name == "" {
		name = DefaultColormap
	}
	cm, err := LookupColormap(name)
	if err != nil {
		return nil, err
	}

	scaled := make([]float64, len(values))
	lo, hi := math.Inf(1), math.Inf(-1)
	for i, v := range values {
		s := v
		if opts.LogScale && v > 0 {
			s = math.Log(v)
		}
		scaled[i] = s
		lo = math.Min(lo, s)
		hi = math.Max(hi, s)
	}

	seen := make(map[float64]bool, len(values))
	rules := make([]StyleRule, 0, len(values))
	for i, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true

		bg := cm.At(heatmapRatio(scaled[i], lo, hi))
		rules = append(rules, StyleRule{
			If:              Equals(column, v),
			BackgroundColor: bg.Hex(),
			Color:           bg.Foreground(),
		})
	}
	return rules, nil
}

func heatmapRatio(v, lo, hi float64) float64 {
	if hi-lo > 0 {
		return (v - lo) / (hi - lo)
	}
	return v - lo
}
