// Provides the geometric primitives the flow field is computed on:
// points (also used as 2D vectors), bounding boxes, polylines
// measured by arc length and curve simplification.
package geom

import "math"

// Point is a position or a displacement in user space.
// The Y axis points downward, as in SVG.
type Point struct{ X, Y float64 }

// Pt is a shorthand for Point{x, y}
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Mul scales both components by f
func (p Point) Mul(f float64) Point { return Point{p.X * f, p.Y * f} }

func (p Point) Dot(q Point) float64 { return p.X*q.X + p.Y*q.Y }

// Length is the euclidean norm of the vector p
func (p Point) Length() float64 { return math.Hypot(p.X, p.Y) }

// Distance returns the euclidean distance between p and q
func (p Point) Distance(q Point) float64 { return q.Sub(p).Length() }

// Lerp returns p*(1-t) + q*t
func (p Point) Lerp(q Point, t float64) Point {
	return Point{p.X*(1-t) + q.X*t, p.Y*(1-t) + q.Y*t}
}

// Rect is an axis aligned box, such as a viewport
// or the extent of a path.
type Rect struct{ X, Y, W, H float64 }

// Empty returns true if the rectangle has no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Contains reports whether p lies inside r, borders included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// Union returns the smallest rectangle containing r and o.
// Empty rectangles are ignored.
func (r Rect) Union(o Rect) Rect {
	if r.W == 0 && r.H == 0 && r.X == 0 && r.Y == 0 {
		return o
	}
	if o.W == 0 && o.H == 0 && o.X == 0 && o.Y == 0 {
		return r
	}
	minX, minY := math.Min(r.X, o.X), math.Min(r.Y, o.Y)
	maxX, maxY := math.Max(r.X+r.W, o.X+o.W), math.Max(r.Y+r.H, o.Y+o.H)
	return Rect{minX, minY, maxX - minX, maxY - minY}
}

// BoundsOf returns the bounding box of the given points,
// or the zero Rect for an empty slice.
func BoundsOf(points []Point) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range points {
		minX = math.Min(p.X, minX)
		minY = math.Min(p.Y, minY)
		maxX = math.Max(p.X, maxX)
		maxY = math.Max(p.Y, maxY)
	}
	return Rect{minX, minY, maxX - minX, maxY - minY}
}

// segmentProject returns the point of the segment [a, b] closest to p,
// and its parameter in [0, 1].
func segmentProject(a, b, p Point) (Point, float64) {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 == 0 { // degenerate segment
		return a, 0
	}
	t := p.Sub(a).Dot(ab) / l2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return a.Lerp(b, t), t
}

// SegmentDistance returns the distance from p to the segment [a, b].
func SegmentDistance(a, b, p Point) float64 {
	q, _ := segmentProject(a, b, p)
	return q.Distance(p)
}
