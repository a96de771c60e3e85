package svgicon

import (
	"io"

	"github.com/benoitkugler/flowfield/geom"
)

// BasePaths flattens the paths of the icon into polylines, in user space
// (the coordinates of the viewBox). Each subpath gives one polyline, with
// curves approximated within `tolerance`; subpaths with less than
// two distinct points are dropped.
func (s *SvgIcon) BasePaths(tolerance float64) []*geom.Polyline {
	var out []*geom.Polyline
	for _, svgp := range s.SVGPaths {
		m := s.Transform.Mult(svgp.Transform)
		for _, sub := range svgp.Path.Flatten(m, tolerance) {
			points := dedup(sub.Points)
			if sub.Closed && len(points) > 2 && points[0] == points[len(points)-1] {
				points = points[:len(points)-1]
			}
			if len(points) < 2 {
				continue
			}
			out = append(out, geom.NewPolyline(points, sub.Closed))
		}
	}
	return out
}

// dedup removes consecutive duplicated points
func dedup(points []geom.Point) []geom.Point {
	out := make([]geom.Point, 0, len(points))
	for i, p := range points {
		if i > 0 && p == points[i-1] {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Canvas returns the drawing area: the viewBox when defined,
// or the union of the bounds of `paths`.
func (s *SvgIcon) Canvas(paths []*geom.Polyline) geom.Rect {
	if s.ViewBox.W > 0 && s.ViewBox.H > 0 {
		return geom.Rect{X: s.ViewBox.X, Y: s.ViewBox.Y, W: s.ViewBox.W, H: s.ViewBox.H}
	}
	var out geom.Rect
	for _, p := range paths {
		out = out.Union(p.Bounds())
	}
	return out
}

// Import reads an SVG document and returns its base paths, flattened
// with geom.DefaultSimplifyTolerance, and its canvas.
func Import(r io.Reader, errMode ErrorMode) ([]*geom.Polyline, geom.Rect, error) {
	icon, err := ReadIconStream(r, errMode)
	if err != nil {
		return nil, geom.Rect{}, err
	}
	paths := icon.BasePaths(geom.DefaultSimplifyTolerance)
	return paths, icon.Canvas(paths), nil
}
