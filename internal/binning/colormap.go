package binning

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/brewer"
)

const lutSize = 256

// Foreground colors picked against a heatmap background.
const (
	ForegroundDark  = "#000000"
	ForegroundLight = "#ffffff"
)

// brightnessThreshold is the perceived brightness above which text turns black.
const brightnessThreshold = 0.60

type rgb struct {
	R, G, B float64
}

func (c rgb) Hex() string {
	ch := func(v float64) int {
		return int(math.Round(math.Max(0, math.Min(1, v)) * 255))
	}
	return fmt.Sprintf("#%02x%02x%02x", ch(c.R), ch(c.G), ch(c.B))
}

func (c rgb) Luminance() float64 {
	return c.R*0.299 + c.G*0.587 + c.B*0.114
}

// Foreground chooses black or white text for a background.
func (c rgb) Foreground() string {
	if c.Luminance() > brightnessThreshold {
		return ForegroundDark
	}
	return ForegroundLight
}

// Colormap is a 256 entry lookup table built by linear interpolation
// between evenly spaced anchor colors.
type Colormap struct {
	name string
	lut  [lutSize]rgb
}

func toRGB(c color.Color) rgb {
	r, g, b, _ := c.RGBA()
	return rgb{R: float64(r) / 0xffff, G: float64(g) / 0xffff, B: float64(b) / 0xffff}
}

func newColormap(name string, anchors []color.Color) *Colormap {
	cm := &Colormap{name: name}
	if len(anchors) == 0 {
		return cm
	}
	pts := make([]rgb, len(anchors))
	for i, a := range anchors {
		pts[i] = toRGB(a)
	}
	segments := float64(len(pts) - 1)
	for i := 0; i < lutSize; i++ {
		if len(pts) == 1 {
			cm.lut[i] = pts[0]
			continue
		}
		pos := float64(i) / (lutSize - 1) * segments
		k := int(pos)
		if k >= len(pts)-1 {
			k = len(pts) - 2
		}
		t := pos - float64(k)
		a, b := pts[k], pts[k+1]
		cm.lut[i] = rgb{
			R: a.R + (b.R-a.R)*t,
			G: a.G + (b.G-a.G)*t,
			B: a.B + (b.B-a.B)*t,
		}
	}
	return cm
}

func (cm *Colormap) Name() string {
	return cm.name
}

func (cm *Colormap) reversed() *Colormap {
	r := &Colormap{name: cm.name + "_r"}
	for i := range cm.lut {
		r.lut[i] = cm.lut[lutSize-1-i]
	}
	return r
}

// At maps a ratio in [0,1] onto the lookup table. Values outside the range clamp.
func (cm *Colormap) At(ratio float64) rgb {
	if math.IsNaN(ratio) {
		ratio = 0
	}
	idx := int(ratio * lutSize)
	if idx >= lutSize {
		idx = lutSize - 1
	}
	if idx < 0 {
		idx = 0
	}
	return cm.lut[idx]
}

// LookupColormap resolves a ColorBrewer palette name such as "RdYlGn";
// a "_r" suffix reverses it.
func LookupColormap(name string) (*Colormap, error) {
	base := strings.TrimSuffix(name, "_r")
	reverse := base != name

	var (
		pal palette.Palette
		err error
	)
	for _, n := range []int{11, 9, 8} {
		pal, err = brewer.GetPalette(brewer.TypeAny, base, n)
		if err == nil {
			break
		}
	}
	if err != nil {
		return nil, fmt.Errorf("unknown colormap %q: %w", name, err)
	}

	cm := newColormap(base, pal.Colors())
	if reverse {
		cm = cm.reversed()
	}
	return cm, nil
}
