package plot

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"bench-dashboard/internal/benchmark"
	"bench-dashboard/internal/logging"
	"bench-dashboard/internal/view"
)

func init() {
	logging.SetOutput(io.Discard)
}

func lineChart() view.Chart {
	return view.Chart{
		Label:    "line_plot_RPS",
		Kind:     view.ChartLine,
		Title:    "Requests per second",
		Scenario: benchmark.ScenarioDB,
		Metric:   benchmark.MetricRPS,
		XLabel:   "Number of clients",
		YLabel:   "RPS",
		Series: []view.Series{
			{Name: "gin", DisplayName: "gin_std", Color: "#636EFA", Points: []view.Point{{X: 16, Y: 50}, {X: 32, Y: 100}}},
			{Name: "laravel", DisplayName: "Laravel", Color: "#EF553B", Index: 1, Points: []view.Point{{X: 16, Y: 20}}},
		},
	}
}

func barChart() view.Chart {
	return view.Chart{
		Label:    "idle_power",
		Kind:     view.ChartBar,
		Title:    "Idle power",
		Scenario: benchmark.ScenarioIdle,
		Metric:   benchmark.MetricAvPowerCPU,
		XLabel:   "Power (W)",
		YLabel:   "Frameworks",
		Series: []view.Series{
			{Name: "gin", DisplayName: "Gin", Color: "#636EFA", Value: 1.5},
			{Name: "laravel", DisplayName: "Laravel", Color: "#EF553B", Index: 1, Value: 3},
		},
	}
}

func TestRender_GonumFormats(t *testing.T) {
	pm := NewManager()
	magic := map[Format]string{
		FormatPDF: "%PDF",
		FormatSVG: "<?xml",
		FormatPNG: "\x89PNG",
	}
	for f, prefix := range magic {
		for _, c := range []view.Chart{lineChart(), barChart()} {
			artifacts, err := pm.Render(c, f)
			if err != nil {
				t.Fatalf("Render %s %s: %v", c.Label, f, err)
			}
			if len(artifacts) != 1 || artifacts[0].Extension != string(f) || artifacts[0].Label != c.Label {
				t.Fatalf("unexpected artifacts %+v", artifacts)
			}
			if !bytes.HasPrefix(artifacts[0].Data, []byte(prefix)) {
				t.Fatalf("%s %s: expected data to start with %q", c.Label, f, prefix)
			}
		}
	}
}

func TestRender_HTML(t *testing.T) {
	artifacts, err := NewManager().Render(lineChart(), FormatHTML)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	html := string(artifacts[0].Data)
	if !strings.Contains(html, "echarts") || !strings.Contains(html, "Requests per second") {
		t.Fatalf("expected an echarts page")
	}
}

func TestRender_Tikz(t *testing.T) {
	artifacts, err := NewManager().Render(lineChart(), FormatTikZ)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(artifacts) != 2 || artifacts[0].FileName() != "line_plot_RPS.tikz" || artifacts[1].FileName() != "line_plot_RPS_figure.tex" {
		t.Fatalf("unexpected artifacts %+v", artifacts)
	}
	pic := string(artifacts[0].Data)
	if strings.Count(pic, `\addplot+`) != 2 {
		t.Fatalf("expected two series in %s", pic)
	}
	if !strings.Contains(pic, "(16.000000,50.000000)") || !strings.Contains(pic, `gin\_std`) {
		t.Fatalf("coordinates or escaped legend missing:\n%s", pic)
	}
	if !strings.Contains(string(artifacts[1].Data), `\input{./line_plot_RPS.tikz }`) {
		t.Fatalf("wrapper does not include the picture:\n%s", artifacts[1].Data)
	}

	bars, err := NewManager().Render(barChart(), FormatTikZ)
	if err != nil {
		t.Fatalf("Render bar: %v", err)
	}
	if !strings.Contains(string(bars[0].Data), "yticklabels={{Gin},{Laravel}}") {
		t.Fatalf("unexpected bar picture:\n%s", bars[0].Data)
	}
}

func TestRenderAll(t *testing.T) {
	charts := []view.Chart{lineChart(), barChart()}
	artifacts, err := NewManager().RenderAll(context.Background(), charts, []Format{FormatSVG, FormatTikZ})
	if err != nil {
		t.Fatalf("RenderAll: %v", err)
	}
	if len(artifacts) != 2+4 {
		t.Fatalf("expected 6 artifacts, got %d", len(artifacts))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewManager().RenderAll(ctx, charts, nil); err == nil {
		t.Fatalf("expected a cancelled context to stop rendering")
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat(" PDF "); err != nil || f != FormatPDF {
		t.Fatalf("expected pdf, got %v %v", f, err)
	}
	if _, err := ParseFormat("gif"); err == nil {
		t.Fatalf("expected an error for gif")
	}
	if _, err := ParseFormats([]string{"svg", "bmp"}); err == nil {
		t.Fatalf("expected an error for bmp")
	}
}

func TestAxisLimits(t *testing.T) {
	if lo, hi := axisLimits(2, 2, 1); lo != "2.00" || hi != "3.00" {
		t.Fatalf("expected degenerate range to widen, got %s %s", lo, hi)
	}
	if lo, hi := axisLimits(0, 100, 1.05); lo != "0.00" || hi != "105.00" {
		t.Fatalf("expected 0..105, got %s %s", lo, hi)
	}
}
