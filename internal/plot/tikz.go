package plot

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
	"text/template"
	"time"

	"bench-dashboard/internal/plot/mappings"
	barTemplate "bench-dashboard/internal/plot/templates/bar"
	plotTemplate "bench-dashboard/internal/plot/templates/plot"
	wrapperTemplate "bench-dashboard/internal/plot/templates/wrapper"
	"bench-dashboard/internal/view"

	"github.com/sirupsen/logrus"
)

var texEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	"_", `\_`,
	"%", `\%`,
	"&", `\&`,
	"#", `\#`,
	"$", `\$`,
	"{", `\{`,
	"}", `\}`,
)

func texEscape(s string) string {
	return texEscaper.Replace(s)
}

func (pm *Manager) renderTikz(chart view.Chart) (string, string, error) {
	pm.logger.WithFields(logrus.Fields{
		"chart":  chart.Label,
		"series": len(chart.Series),
	}).Debug("Generating tikz plot")

	var (
		plotOutput string
		err        error
	)
	switch chart.Kind {
	case view.ChartLine:
		plotOutput, err = render("plot", plotTemplate.PlotTemplate, pm.preparePlotData(chart))
	case view.ChartBar:
		plotOutput, err = render("bar", barTemplate.BarTemplate, pm.prepareBarData(chart))
	default:
		err = fmt.Errorf("unknown chart kind %q", chart.Kind)
	}
	if err != nil {
		return "", "", err
	}

	wrapperOutput, err := render("wrapper", wrapperTemplate.WrapperTemplate, pm.prepareWrapperData(chart))
	if err != nil {
		return "", "", err
	}
	return plotOutput, wrapperOutput, nil
}

func generatedDate() string {
	return time.Now().Format("2006-01-02 15:04:05")
}

func (pm *Manager) preparePlotData(chart view.Chart) *plotTemplate.PlotData {
	xMin, xMax := math.Inf(1), math.Inf(-1)
	yMin, yMax := math.Inf(1), math.Inf(-1)

	var series []plotTemplate.PlotSeries
	for i, s := range chart.Series {
		ps := plotTemplate.PlotSeries{
			Index:       s.Index,
			Name:        s.Name,
			Style:       mappings.GetSeriesStyle(s.Color, i).ToTikzOptions(),
			LegendEntry: texEscape(s.DisplayName),
		}
		for _, pt := range s.Points {
			ps.Coordinates = append(ps.Coordinates, fmt.Sprintf("(%.6f,%.6f)", pt.X, pt.Y))
			xMin, xMax = math.Min(xMin, pt.X), math.Max(xMax, pt.X)
			yMin, yMax = math.Min(yMin, pt.Y), math.Max(yMax, pt.Y)
		}
		if len(ps.Coordinates) > 0 {
			series = append(series, ps)
		}
	}

	xMinStr, xMaxStr := axisLimits(xMin, xMax, 1)
	yMinStr, yMaxStr := axisLimits(math.Min(yMin, 0), yMax, 1.05)

	return &plotTemplate.PlotData{
		GeneratedDate: generatedDate(),
		Label:         chart.Label,
		Scenario:      string(chart.Scenario),
		Metric:        string(chart.Metric),
		Title:         texEscape(chart.Title),
		XLabel:        texEscape(chart.XLabel),
		YLabel:        texEscape(chart.YLabel),
		XMin:          xMinStr,
		XMax:          xMaxStr,
		YMin:          yMinStr,
		YMax:          yMaxStr,
		Plots:         series,
	}
}

// axisLimits formats data bounds, widening the top by headroom. Empty or
// degenerate ranges get a unit span.
func axisLimits(lo, hi, headroom float64) (string, string) {
	if math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return "0", "1"
	}
	top := hi * headroom
	if hi < 0 {
		top = hi
	}
	if top <= lo {
		top = lo + 1
	}
	return fmt.Sprintf("%.2f", lo), fmt.Sprintf("%.2f", top)
}

func (pm *Manager) prepareBarData(chart view.Chart) *barTemplate.BarData {
	bars := make([]barTemplate.Bar, len(chart.Series))
	for i, s := range chart.Series {
		bars[i] = barTemplate.Bar{
			Name:  s.Name,
			Label: texEscape(s.DisplayName),
			Color: mappings.TikzColor(s.Color),
			Value: strconv.FormatFloat(s.Value, 'f', 6, 64),
		}
	}
	return &barTemplate.BarData{
		GeneratedDate: generatedDate(),
		Label:         chart.Label,
		Metric:        string(chart.Metric),
		Title:         texEscape(chart.Title),
		XLabel:        texEscape(chart.XLabel),
		Height:        3 + len(bars),
		Bars:          bars,
	}
}

func (pm *Manager) prepareWrapperData(chart view.Chart) *wrapperTemplate.WrapperData {
	caption := fmt.Sprintf("%s per framework", chart.Title)
	if chart.Scenario != "" {
		caption = fmt.Sprintf("%s per framework, %s scenario", chart.Title, mappings.ScenarioLabel(chart.Scenario))
	}
	return &wrapperTemplate.WrapperData{
		GeneratedDate: generatedDate(),
		Label:         chart.Label,
		PlotFileName:  chart.Label + ".tikz",
		ShortCaption:  texEscape(chart.Title),
		Caption:       texEscape(caption),
	}
}

func render(name, text string, data interface{}) (string, error) {
	tmpl, err := template.New(name).Parse(text)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s template: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute %s template: %w", name, err)
	}
	return buf.String(), nil
}
