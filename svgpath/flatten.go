package svgpath

import (
	"github.com/benoitkugler/flowfield/geom"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// Subpath is a flattened part of a path, in user space.
type Subpath struct {
	Points []geom.Point
	Closed bool
}

// flattener is a Drawer approximating curves by polylines
type flattener struct {
	tolerance float64
	current   []geom.Point
	out       []Subpath
}

func toPoint(a fixed.Point26_6) geom.Point {
	return geom.Pt(float64(a.X)/64, float64(a.Y)/64)
}

func (f *flattener) last() geom.Point { return f.current[len(f.current)-1] }

func (f *flattener) Start(a fixed.Point26_6) {
	f.Stop(false)
	f.current = []geom.Point{toPoint(a)}
}

func (f *flattener) Line(b fixed.Point26_6) {
	if len(f.current) == 0 {
		f.current = []geom.Point{{}}
	}
	f.current = append(f.current, toPoint(b))
}

// unit returns the length mapped to one unit of the rasterx flatteners,
// which subdivide curves deviating more than about a third of a unit.
func (f *flattener) unit() float64 {
	if f.tolerance <= 0 {
		return geom.DefaultSimplifyTolerance
	}
	return f.tolerance
}

func (f *flattener) scaled(p geom.Point) (float32, float32) {
	u := f.unit()
	return float32(p.X / u), float32(p.Y / u)
}

func (f *flattener) lineTo(x, y float32) {
	u := f.unit()
	f.current = append(f.current, geom.Pt(float64(x)*u, float64(y)*u))
}

func (f *flattener) QuadBezier(b, c fixed.Point26_6) {
	if len(f.current) == 0 {
		f.current = []geom.Point{{}}
	}
	ax, ay := f.scaled(f.last())
	bx, by := f.scaled(toPoint(b))
	cx, cy := f.scaled(toPoint(c))
	rasterx.QuadTo(ax, ay, bx, by, cx, cy, f.lineTo)
	f.current[len(f.current)-1] = toPoint(c) // exact end point
}

func (f *flattener) CubeBezier(b, c, d fixed.Point26_6) {
	if len(f.current) == 0 {
		f.current = []geom.Point{{}}
	}
	ax, ay := f.scaled(f.last())
	bx, by := f.scaled(toPoint(b))
	cx, cy := f.scaled(toPoint(c))
	dx, dy := f.scaled(toPoint(d))
	rasterx.CubeTo(ax, ay, bx, by, cx, cy, dx, dy, f.lineTo)
	f.current[len(f.current)-1] = toPoint(d)
}

func (f *flattener) Stop(closeLoop bool) {
	if len(f.current) == 0 {
		return
	}
	f.out = append(f.out, Subpath{Points: f.current, Closed: closeLoop})
	f.current = nil
}

// Flatten applies `M` to the path and approximates its curves
// by polylines, with a maximal deviation of about `tolerance`.
// Each subpath (started by a move) is returned separately.
func (p Path) Flatten(M Matrix2D, tolerance float64) []Subpath {
	f := flattener{tolerance: tolerance}
	p.AddTo(&f, M)
	return f.out
}

// FromPolyline returns the path joining `points`, closed if required.
func FromPolyline(points []geom.Point, closed bool) Path {
	if len(points) == 0 {
		return nil
	}
	p := make(Path, 0, len(points)+1)
	p.Start(toFixedP(points[0].X, points[0].Y))
	for _, pt := range points[1:] {
		p.Line(toFixedP(pt.X, pt.Y))
	}
	p.Stop(closed)
	return p
}
