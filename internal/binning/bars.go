package binning

import (
	"fmt"
	"math"
)

const NumBins = 100

const (
	BarColor       = "#0074D9"
	DivergingAbove = "#3D9970"
	DivergingBelow = "#FF4136"
)

const (
	barPadding = 2
	unfilled   = "white"
)

type bin struct {
	low, high       float64
	lowPct, highPct float64
	last            bool
}

// bins splits [min,max] of values into NumBins equal-width buckets.
func bins(values []float64) ([]bin, float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	bounds := make([]float64, NumBins+1)
	ranges := make([]float64, NumBins+1)
	for i := range bounds {
		bounds[i] = float64(i) * (1.0 / NumBins)
		ranges[i] = (hi-lo)*bounds[i] + lo
	}
	// Rounding can leave the computed top edge just below the maximum.
	ranges[NumBins] = hi

	out := make([]bin, 0, NumBins)
	for i := 1; i < len(bounds); i++ {
		out = append(out, bin{
			low:     ranges[i-1],
			high:    ranges[i],
			lowPct:  bounds[i-1] * 100,
			highPct: bounds[i] * 100,
			last:    i == len(bounds)-1,
		})
	}
	return out, lo, hi
}

func pct(v float64) string {
	return formatNumber(v) + "%"
}

// Bars renders a proportional two-tone bar per bin.
func Bars(values []float64, column string) []StyleRule {
	if len(values) == 0 {
		return nil
	}
	bs, _, _ := bins(values)
	rules := make([]StyleRule, 0, len(bs))
	for _, b := range bs {
		bg := fmt.Sprintf("linear-gradient(90deg, %s 0%%, %s %s, %s %s, %s 100%%)",
			BarColor, BarColor, pct(b.highPct), unfilled, pct(b.highPct), unfilled)
		rules = append(rules, StyleRule{
			If:            Range(column, b.low, b.high, b.last),
			Background:    bg,
			PaddingTop:    barPadding,
			PaddingBottom: barPadding,
		})
	}
	return rules
}

// DivergingBars fills from the center: rightwards in above for bins whose
// upper bound exceeds the midpoint, leftwards in below otherwise. Empty colors
// fall back to the defaults.
func DivergingBars(values []float64, column, above, below string) []StyleRule {
	if len(values) == 0 {
		return nil
	}
	if above == "" {
		above = DivergingAbove
	}
	if below == "" {
		below = DivergingBelow
	}

	bs, lo, hi := bins(values)
	midpoint := (hi + lo) / 2.0
	w := unfilled

	rules := make([]StyleRule, 0, len(bs))
	for _, b := range bs {
		var bg string
		if b.high > midpoint {
			bg = fmt.Sprintf("linear-gradient(90deg, %s 0%%, %s 50%%, %s 50%%, %s %s, %s %s, %s 100%%)",
				w, w, above, above, pct(b.highPct), w, pct(b.highPct), w)
		} else {
			bg = fmt.Sprintf("linear-gradient(90deg, %s 0%%, %s %s, %s %s, %s 50%%, %s 50%%, %s 100%%)",
				w, w, pct(b.lowPct), below, pct(b.lowPct), below, w, w)
		}
		rules = append(rules, StyleRule{
			If:            Range(column, b.low, b.high, b.last),
			Background:    bg,
			PaddingTop:    barPadding,
			PaddingBottom: barPadding,
		})
	}
	return rules
}
