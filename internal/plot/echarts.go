package plot

import (
	"bytes"
	"fmt"
	"io"

	"bench-dashboard/internal/view"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

func (pm *Manager) lineEchart(chart view.Chart) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    chart.Title,
			Subtitle: string(chart.Scenario),
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(true),
			Top:  "bottom",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: chart.XLabel,
			Type: "value",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: chart.YLabel,
			Type: "value",
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Width:  "100%",
			Height: "420px",
		}),
	)

	for _, s := range chart.Series {
		data := make([]opts.LineData, len(s.Points))
		for i, pt := range s.Points {
			data[i] = opts.LineData{Value: []interface{}{pt.X, pt.Y}}
		}
		line.AddSeries(s.DisplayName, data,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color}),
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(true)}),
		)
	}
	return line
}

func (pm *Manager) barEchart(chart view.Chart) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: chart.Title,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(false),
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: chart.YLabel,
			Type: "category",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: chart.XLabel,
			Type: "value",
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Width:  "100%",
			Height: "420px",
		}),
	)

	names := make([]string, len(chart.Series))
	data := make([]opts.BarData, len(chart.Series))
	for i, s := range chart.Series {
		names[i] = s.DisplayName
		data[i] = opts.BarData{Value: s.Value, ItemStyle: &opts.ItemStyle{Color: s.Color}}
	}
	bar.SetXAxis(names).AddSeries(chart.Title, data)
	bar.XYReversal()
	return bar
}

func (pm *Manager) echart(chart view.Chart) (components.Charter, error) {
	switch chart.Kind {
	case view.ChartLine:
		return pm.lineEchart(chart), nil
	case view.ChartBar:
		return pm.barEchart(chart), nil
	default:
		return nil, fmt.Errorf("unknown chart kind %q", chart.Kind)
	}
}

func (pm *Manager) renderEcharts(chart view.Chart) ([]byte, error) {
	page, err := pm.Page(chart.Title, []view.Chart{chart})
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Page lays out charts on a single interactive HTML page.
func (pm *Manager) Page(title string, list []view.Chart) (*components.Page, error) {
	page := components.NewPage()
	page.PageTitle = title
	for _, c := range list {
		ec, err := pm.echart(c)
		if err != nil {
			return nil, err
		}
		page.AddCharts(ec)
	}
	return page, nil
}

func (pm *Manager) WritePage(w io.Writer, title string, list []view.Chart) error {
	page, err := pm.Page(title, list)
	if err != nil {
		return err
	}
	return page.Render(w)
}
