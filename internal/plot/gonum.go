package plot

import (
	"bytes"
	"fmt"
	"image/color"

	"bench-dashboard/internal/plot/mappings"
	"bench-dashboard/internal/view"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"
)

func toColor(hex string) color.Color {
	r, g, b, err := mappings.ParseHexColor(hex)
	if err != nil {
		return color.Black
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

var dashes = map[string][]vg.Length{
	"solid":          nil,
	"dashed":         {vg.Points(5), vg.Points(3)},
	"densely dashed": {vg.Points(3), vg.Points(1.5)},
	"densely dotted": {vg.Points(1), vg.Points(1)},
	"loosely dotted": {vg.Points(1), vg.Points(4)},
	"dashdotted":     {vg.Points(5), vg.Points(2), vg.Points(1), vg.Points(2)},
}

func glyphShape(mark string) draw.GlyphDrawer {
	switch mark {
	case "square*":
		return draw.BoxGlyph{}
	case "triangle*":
		return draw.TriangleGlyph{}
	case "diamond*", "pentagon*":
		return draw.PyramidGlyph{}
	case "x":
		return draw.CrossGlyph{}
	case "o":
		return draw.RingGlyph{}
	case "star":
		return draw.PlusGlyph{}
	default:
		return draw.CircleGlyph{}
	}
}

func (pm *Manager) buildGonum(chart view.Chart) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = chart.Title
	p.X.Label.Text = chart.XLabel
	p.Y.Label.Text = chart.YLabel
	p.Add(plotter.NewGrid())

	switch chart.Kind {
	case view.ChartLine:
		for i, s := range chart.Series {
			xys := make(plotter.XYs, len(s.Points))
			for j, pt := range s.Points {
				xys[j].X = pt.X
				xys[j].Y = pt.Y
			}
			line, points, err := plotter.NewLinePoints(xys)
			if err != nil {
				return nil, fmt.Errorf("series %s: %w", s.Name, err)
			}
			style := mappings.GetSeriesStyle(s.Color, i)
			c := toColor(s.Color)
			line.Color = c
			line.Width = vg.Points(1.5)
			line.Dashes = dashes[style.LineStyle]
			points.Color = c
			points.Shape = glyphShape(style.Mark)
			points.Radius = vg.Points(2.5)
			p.Add(line, points)
			p.Legend.Add(s.DisplayName, line, points)
		}
		p.Legend.Top = true
	case view.ChartBar:
		names := make([]string, len(chart.Series))
		for i, s := range chart.Series {
			names[i] = s.DisplayName
			values := make(plotter.Values, len(chart.Series))
			values[i] = s.Value
			bars, err := plotter.NewBarChart(values, vg.Points(12))
			if err != nil {
				return nil, fmt.Errorf("series %s: %w", s.Name, err)
			}
			bars.Horizontal = true
			bars.Color = toColor(s.Color)
			bars.LineStyle.Width = 0
			p.Add(bars)
		}
		if len(names) > 0 {
			p.NominalY(names...)
		}
	default:
		return nil, fmt.Errorf("unknown chart kind %q", chart.Kind)
	}
	return p, nil
}

func (pm *Manager) canvas(f Format) (vg.CanvasWriterTo, error) {
	switch f {
	case FormatPDF:
		return vgpdf.New(pm.width, pm.height), nil
	case FormatSVG:
		return vgsvg.New(pm.width, pm.height), nil
	case FormatPNG:
		return vgimg.PngCanvas{Canvas: vgimg.NewWith(
			vgimg.UseWH(pm.width, pm.height),
			vgimg.UseDPI(pm.dpi),
			vgimg.UseBackgroundColor(color.White),
		)}, nil
	default:
		return nil, fmt.Errorf("format %q is not drawn with gonum", f)
	}
}

func (pm *Manager) renderGonum(chart view.Chart, f Format) ([]byte, error) {
	p, err := pm.buildGonum(chart)
	if err != nil {
		return nil, err
	}
	can, err := pm.canvas(f)
	if err != nil {
		return nil, err
	}
	p.Draw(draw.New(can))

	var buf bytes.Buffer
	if _, err := can.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
