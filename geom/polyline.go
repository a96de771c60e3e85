package geom

import (
	"math"
	"sort"
)

// DefaultHitTolerance is the distance under which a point
// is considered on the outline of a polyline.
const DefaultHitTolerance = 4.

// BasePath is a curve strokes are generated along.
// Offsets are arc length distances from the start of the curve.
type BasePath interface {
	// Length is the total arc length of the curve.
	Length() float64
	// PointAt returns the point at the given offset.
	PointAt(offset float64) Point
	// NearestPoint returns the point of the curve closest to p.
	NearestPoint(p Point) Point
	// OffsetOf returns the offset of the point of the curve closest to p.
	OffsetOf(p Point) float64
	// HitTest reports whether p is inside the curve (closed curves) or
	// close to its outline.
	HitTest(p Point) bool
}

var _ BasePath = (*Polyline)(nil) // assert interface conformance

// Polyline is a BasePath made of straight segments.
// It is immutable once built.
type Polyline struct {
	points []Point   // for closed polylines, the first point is repeated at the end
	cumul  []float64 // cumul[i] is the arc length from points[0] to points[i]
	closed bool

	// Tolerance is the outline distance used by HitTest
	Tolerance float64
}

// NewPolyline copies `points` into a new polyline.
// If `closed` is true, a closing segment back to the first point is added.
func NewPolyline(points []Point, closed bool) *Polyline {
	pts := append([]Point(nil), points...)
	if closed && len(pts) > 1 && pts[0] != pts[len(pts)-1] {
		pts = append(pts, pts[0])
	}
	cumul := make([]float64, len(pts))
	for i := 1; i < len(pts); i++ {
		cumul[i] = cumul[i-1] + pts[i-1].Distance(pts[i])
	}
	return &Polyline{points: pts, cumul: cumul, closed: closed, Tolerance: DefaultHitTolerance}
}

// Points returns a copy of the vertices. For closed polylines
// the first vertex is repeated at the end.
func (pl *Polyline) Points() []Point { return append([]Point(nil), pl.points...) }

// Closed reports whether the polyline is a loop.
func (pl *Polyline) Closed() bool { return pl.closed }

func (pl *Polyline) Length() float64 {
	if len(pl.cumul) == 0 {
		return 0
	}
	return pl.cumul[len(pl.cumul)-1]
}

// Bounds returns the extent of the polyline.
func (pl *Polyline) Bounds() Rect { return BoundsOf(pl.points) }

// PointAt wraps offsets around closed polylines and clamps them on open ones.
func (pl *Polyline) PointAt(offset float64) Point {
	if len(pl.points) == 0 {
		return Point{}
	}
	L := pl.Length()
	if L == 0 {
		return pl.points[0]
	}
	if pl.closed {
		offset = math.Mod(offset, L)
		if offset < 0 {
			offset += L
		}
	} else if offset <= 0 {
		return pl.points[0]
	} else if offset >= L {
		return pl.points[len(pl.points)-1]
	}
	// first vertex strictly after offset
	i := sort.SearchFloat64s(pl.cumul, offset)
	if i == 0 {
		return pl.points[0]
	}
	if i >= len(pl.points) {
		return pl.points[len(pl.points)-1]
	}
	segLength := pl.cumul[i] - pl.cumul[i-1]
	if segLength == 0 {
		return pl.points[i]
	}
	t := (offset - pl.cumul[i-1]) / segLength
	return pl.points[i-1].Lerp(pl.points[i], t)
}

// nearest returns the closest point of the outline to p,
// with its offset and distance to p.
func (pl *Polyline) nearest(p Point) (q Point, offset, dist float64) {
	switch len(pl.points) {
	case 0:
		return Point{}, 0, math.Inf(1)
	case 1:
		return pl.points[0], 0, pl.points[0].Distance(p)
	}
	dist = math.Inf(1)
	for i := 1; i < len(pl.points); i++ {
		a, b := pl.points[i-1], pl.points[i]
		proj, t := segmentProject(a, b, p)
		if d := proj.Distance(p); d < dist {
			dist = d
			q = proj
			offset = pl.cumul[i-1] + t*(pl.cumul[i]-pl.cumul[i-1])
		}
	}
	if pl.closed && offset >= pl.Length() {
		offset = 0 // the closing vertex is the start
	}
	return q, offset, dist
}

func (pl *Polyline) NearestPoint(p Point) Point {
	q, _, _ := pl.nearest(p)
	return q
}

func (pl *Polyline) OffsetOf(p Point) float64 {
	_, offset, _ := pl.nearest(p)
	return offset
}

// Distance returns the distance from p to the outline.
func (pl *Polyline) Distance(p Point) float64 {
	_, _, d := pl.nearest(p)
	return d
}

func (pl *Polyline) HitTest(p Point) bool {
	if pl.closed && pl.contains(p) {
		return true
	}
	return pl.Distance(p) <= pl.Tolerance
}

// contains uses the even-odd rule
func (pl *Polyline) contains(p Point) bool {
	inside := false
	for i := 1; i < len(pl.points); i++ {
		a, b := pl.points[i-1], pl.points[i]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}
