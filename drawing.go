package flowfield

import (
	"image/color"

	"github.com/benoitkugler/flowfield/geom"
)

// Drawing gathers what the exporters (svgdraw, svgraster, svgpdf) render:
// the generated strokes, optionally over the base paths.
type Drawing struct {
	Name   string // used as title
	Canvas geom.Rect
	Lines  [][]geom.Point // generated strokes
	Base   [][]geom.Point // base path outlines, drawn under Lines

	StrokeWidth float64
	StrokeColor color.RGBA
	BaseColor   color.RGBA
}

// Drawing returns the drawing of the layer within `canvas`,
// with the default style. `base` may be nil to only show the strokes.
func (l Layer) Drawing(name string, canvas geom.Rect, base []*geom.Polyline) Drawing {
	d := Drawing{
		Name:        name,
		Canvas:      canvas,
		StrokeWidth: 1,
		StrokeColor: color.RGBA{A: 0xff},
		BaseColor:   color.RGBA{R: 0xd0, G: 0x30, B: 0x30, A: 0xff},
	}
	d.Lines = make([][]geom.Point, len(l.Strokes))
	for i, st := range l.Strokes {
		d.Lines[i] = st.Points
	}
	for _, b := range base {
		d.Base = append(d.Base, b.Points())
	}
	return d
}
