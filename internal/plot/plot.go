package plot

import (
	"context"
	"fmt"
	"strings"

	"bench-dashboard/internal/export"
	"bench-dashboard/internal/logging"
	"bench-dashboard/internal/view"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/plot/vg"
)

type Format string

const (
	FormatPDF  Format = "pdf"
	FormatSVG  Format = "svg"
	FormatPNG  Format = "png"
	FormatHTML Format = "html"
	FormatTikZ Format = "tikz"
)

var Formats = []Format{FormatPDF, FormatSVG, FormatPNG, FormatHTML, FormatTikZ}

func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown chart format %q", s)
}

func ParseFormats(values []string) ([]Format, error) {
	out := make([]Format, 0, len(values))
	for _, v := range values {
		f, err := ParseFormat(v)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// Manager turns chart definitions into exportable artifacts.
type Manager struct {
	logger *logrus.Logger
	width  vg.Length
	height vg.Length
	dpi    int
}

func NewManager() *Manager {
	return &Manager{
		logger: logging.GetLogger(),
		width:  16 * vg.Centimeter,
		height: 10 * vg.Centimeter,
		dpi:    150,
	}
}

// Render produces the artifacts of one chart in format f. TikZ yields the
// picture and a figure wrapper; every other format yields a single file.
func (pm *Manager) Render(chart view.Chart, f Format) ([]export.Artifact, error) {
	switch f {
	case FormatPDF, FormatSVG, FormatPNG:
		data, err := pm.renderGonum(chart, f)
		if err != nil {
			return nil, fmt.Errorf("failed to render %s as %s: %w", chart.Label, f, err)
		}
		return []export.Artifact{{Label: chart.Label, Extension: string(f), Data: data}}, nil
	case FormatHTML:
		data, err := pm.renderEcharts(chart)
		if err != nil {
			return nil, fmt.Errorf("failed to render %s as html: %w", chart.Label, err)
		}
		return []export.Artifact{{Label: chart.Label, Extension: "html", Data: data}}, nil
	case FormatTikZ:
		plotTikz, wrapperTex, err := pm.renderTikz(chart)
		if err != nil {
			return nil, fmt.Errorf("failed to render %s as tikz: %w", chart.Label, err)
		}
		return []export.Artifact{
			{Label: chart.Label, Extension: "tikz", Data: []byte(plotTikz)},
			{Label: chart.Label + "_figure", Extension: "tex", Data: []byte(wrapperTex)},
		}, nil
	default:
		return nil, fmt.Errorf("unknown chart format %q", f)
	}
}

func (pm *Manager) RenderAll(ctx context.Context, charts []view.Chart, formats []Format) ([]export.Artifact, error) {
	if len(formats) == 0 {
		formats = []Format{FormatPDF}
	}
	var out []export.Artifact
	for _, f := range formats {
		for _, c := range charts {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			artifacts, err := pm.Render(c, f)
			if err != nil {
				return nil, err
			}
			out = append(out, artifacts...)
		}
	}
	pm.logger.WithFields(logrus.Fields{
		"charts":    len(charts),
		"formats":   len(formats),
		"artifacts": len(out),
	}).Debug("Rendered chart artifacts")
	return out, nil
}
