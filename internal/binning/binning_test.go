package binning

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestHeatmap_ConstantColumn(t *testing.T) {
	rules, err := Heatmap([]float64{5, 5, 5}, "av_power_cpu", HeatmapOptions{})
	if err != nil {
		t.Fatalf("Heatmap: %v", err)
	}
	if len(rules) != 1 {
		t.Fatalf("expected 1 rule for one distinct value, got %d", len(rules))
	}
	if got := heatmapRatio(5, 5, 5); got != 0 {
		t.Fatalf("expected ratio 0, got %v", got)
	}
	if rules[0].BackgroundColor != "#006837" || rules[0].Color != ForegroundLight {
		t.Fatalf("expected #006837/white, got %s/%s", rules[0].BackgroundColor, rules[0].Color)
	}
}

func TestHeatmap_OneRulePerDistinctValue(t *testing.T) {
	rules, err := Heatmap([]float64{3, 1, 3, 2, 1}, "cpu", HeatmapOptions{})
	if err != nil {
		t.Fatalf("Heatmap: %v", err)
	}
	if len(rules) != 3 {
		t.Fatalf("expected 3 rules, got %d", len(rules))
	}
	want := []float64{3, 1, 2}
	for i, r := range rules {
		if r.If.Value != want[i] {
			t.Fatalf("rule %d: expected value %v, got %v", i, want[i], r.If.Value)
		}
	}
	// reversed ramp: the maximum is red, the minimum green
	if rules[0].BackgroundColor != "#a50026" {
		t.Fatalf("expected max to map to #a50026, got %s", rules[0].BackgroundColor)
	}
	if rules[1].BackgroundColor != "#006837" {
		t.Fatalf("expected min to map to #006837, got %s", rules[1].BackgroundColor)
	}
	if rules[2].Color != ForegroundDark {
		t.Fatalf("expected black text on the yellow midpoint, got %s", rules[2].Color)
	}
}

func TestHeatmap_ForwardColormap(t *testing.T) {
	rules, err := Heatmap([]float64{0, 1}, "cpu", HeatmapOptions{Colormap: "RdYlGn"})
	if err != nil {
		t.Fatalf("Heatmap: %v", err)
	}
	if rules[0].BackgroundColor != "#a50026" || rules[1].BackgroundColor != "#006837" {
		t.Fatalf("unexpected colors %s %s", rules[0].BackgroundColor, rules[1].BackgroundColor)
	}
}

func TestHeatmap_LogScaleKeepsRawValues(t *testing.T) {
	rules, err := Heatmap([]float64{1, 100, -5}, "cpu", HeatmapOptions{LogScale: true})
	if err != nil {
		t.Fatalf("Heatmap: %v", err)
	}
	if len(rules) != 3 {
		t.Fatalf("expected 3 rules, got %d", len(rules))
	}
	if rules[1].If.Value != 100 || rules[2].If.Value != -5 {
		t.Fatalf("predicates must match untransformed values, got %v %v", rules[1].If.Value, rules[2].If.Value)
	}
	if rules[1].BackgroundColor != "#a50026" {
		t.Fatalf("expected ln(100) to be the maximum, got %s", rules[1].BackgroundColor)
	}
	if rules[2].BackgroundColor != "#006837" {
		t.Fatalf("expected unscaled -5 to be the minimum, got %s", rules[2].BackgroundColor)
	}
}

func TestHeatmap_UnknownColormap(t *testing.T) {
	if _, err := Heatmap([]float64{1}, "cpu", HeatmapOptions{Colormap: "NoSuchRamp"}); err == nil {
		t.Fatalf("expected an error for an unknown colormap")
	}
}

func TestHeatmap_Empty(t *testing.T) {
	rules, err := Heatmap(nil, "cpu", HeatmapOptions{})
	if err != nil || rules != nil {
		t.Fatalf("expected no rules and no error, got %v %v", rules, err)
	}
}

func TestForeground(t *testing.T) {
	if got := (rgb{1, 1, 1}).Foreground(); got != ForegroundDark {
		t.Fatalf("expected black on white, got %s", got)
	}
	if got := (rgb{0, 0, 0}).Foreground(); got != ForegroundLight {
		t.Fatalf("expected white on black, got %s", got)
	}
	if got := (rgb{0.5, 0.5, 0.5}).Foreground(); got != ForegroundLight {
		t.Fatalf("expected white on mid grey, got %s", got)
	}
}

func TestBars_HundredBinsMaxInLastBin(t *testing.T) {
	values := []float64{0, 3, 7.5, 10}
	rules := Bars(values, "totalRequests")
	if len(rules) != NumBins {
		t.Fatalf("expected %d bins, got %d", NumBins, len(rules))
	}
	last := rules[len(rules)-1]
	if !last.If.ClosedTop || !last.If.Matches(10) {
		t.Fatalf("maximum must fall in the closed last bin: %+v", last.If)
	}
	r, ok := Match(rules, 10)
	if !ok || r.If != last.If {
		t.Fatalf("expected the first matching rule for max to be the last bin")
	}
	if !strings.Contains(last.Background, "#0074D9 100%") {
		t.Fatalf("expected a full bar in the last bin, got %s", last.Background)
	}
	if rules[0].PaddingTop != 2 || rules[0].PaddingBottom != 2 {
		t.Fatalf("expected padding 2, got %d/%d", rules[0].PaddingTop, rules[0].PaddingBottom)
	}
}

func TestBars_EveryValueMatchesExactlyOneBin(t *testing.T) {
	values := []float64{-4, -1.25, 0, 0.01, 2.5, 6, 6}
	rules := Bars(values, "cpu")
	for _, v := range values {
		n := 0
		for _, r := range rules {
			if r.If.Matches(v) {
				n++
			}
		}
		if n != 1 {
			t.Fatalf("value %v matched %d bins", v, n)
		}
	}
}

func TestBars_MaxMatchesWithAwkwardBounds(t *testing.T) {
	for i := 1; i <= 100; i++ {
		for j := 1; j <= 150; j++ {
			lo, hi := float64(i)/10, float64(j)/7
			if hi <= lo {
				continue
			}
			values := []float64{lo, hi}
			if _, ok := Match(Bars(values, "c"), hi); !ok {
				t.Fatalf("bars: max of %v matched no bin", values)
			}
			if _, ok := Match(DivergingBars(values, "c", "", ""), hi); !ok {
				t.Fatalf("diverging: max of %v matched no bin", values)
			}
		}
	}

	rules := Bars([]float64{7.7, 110.0 / 7}, "c")
	if last := rules[len(rules)-1]; last.If.High != 110.0/7 {
		t.Fatalf("expected the last bin to end at the maximum, got %v", last.If.High)
	}
}

func TestBars_Empty(t *testing.T) {
	if rules := Bars(nil, "cpu"); rules != nil {
		t.Fatalf("expected no rules, got %d", len(rules))
	}
}

func TestDivergingBars(t *testing.T) {
	rules := DivergingBars([]float64{-10, 10}, "latencyAvg", "", "")
	if len(rules) != NumBins {
		t.Fatalf("expected %d bins, got %d", NumBins, len(rules))
	}
	if !strings.Contains(rules[0].Background, DivergingBelow) {
		t.Fatalf("lowest bin should fill leftwards in %s: %s", DivergingBelow, rules[0].Background)
	}
	if !strings.Contains(rules[NumBins-1].Background, DivergingAbove) {
		t.Fatalf("highest bin should fill rightwards in %s: %s", DivergingAbove, rules[NumBins-1].Background)
	}

	custom := DivergingBars([]float64{0, 1}, "latencyAvg", "#111111", "#222222")
	if !strings.Contains(custom[NumBins-1].Background, "#111111") || !strings.Contains(custom[0].Background, "#222222") {
		t.Fatalf("custom colors not applied")
	}
}

func TestPredicateQuery(t *testing.T) {
	cases := []struct {
		p    Predicate
		want string
	}{
		{Equals("cpu", 1.5), "{cpu} = 1.5"},
		{Range("cpu", 0, 1, false), "{cpu} >= 0 && {cpu} < 1"},
		{Range("cpu", 2, 4, true), "{cpu} >= 2 && {cpu} <= 4"},
	}
	for _, c := range cases {
		if got := c.p.Query(); got != c.want {
			t.Fatalf("expected %q, got %q", c.want, got)
		}
	}
}

func TestStyleRuleJSON(t *testing.T) {
	b, err := json.Marshal(StyleRule{If: Equals("cpu", 2), BackgroundColor: "#ffffff", Color: ForegroundDark})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	s := string(b)
	if !strings.Contains(s, `"filter_query":"{cpu} = 2"`) || !strings.Contains(s, `"column_id":"cpu"`) {
		t.Fatalf("unexpected JSON: %s", s)
	}
	if strings.Contains(s, "paddingTop") {
		t.Fatalf("zero padding should be omitted: %s", s)
	}
}
